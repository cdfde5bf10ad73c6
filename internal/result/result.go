// Package result is the uniform outcome returned by every workflow entry point,
// so handlers render success and failure without inspecting Go errors.
package result

import "github.com/MikeMC777/khattak-mart/internal/validation"

// Kind classifies a failure. It is not serialized.
type Kind int

const (
	KindNone Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindInternal
)

// Result is the {success, message, errors?, data?} envelope.
// swagger:model
type Result[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Data    *T                  `json:"data,omitempty"`
	Kind    Kind                `json:"-"`
}

func OK[T any](msg string, data T) Result[T] {
	return Result[T]{Success: true, Message: msg, Data: &data}
}

func Fail[T any](msg string) Result[T] {
	return Result[T]{Message: msg, Kind: KindInternal}
}

func NotFound[T any](msg string) Result[T] {
	return Result[T]{Message: msg, Kind: KindNotFound}
}

// Conflict rejects a request that is well formed but not allowed in the current state.
func Conflict[T any](msg string) Result[T] {
	return Result[T]{Message: msg, Kind: KindConflict}
}

// Invalid reports field errors from err under the generic form message.
func Invalid[T any](err error) Result[T] {
	return Result[T]{Message: "Invalid form data.", Errors: validation.FieldErrors(err), Kind: KindInvalid}
}
