// Package notify builds the hand-off for order notifications. Nothing is sent
// from the server; the customer's browser opens the returned link.
package notify

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// Dispatcher turns a message for a destination into a dispatch URL.
type Dispatcher interface {
	Dispatch(ctx context.Context, destination, message string) (string, error)
}

var ErrNoDestination = errors.New("notification destination is empty")

const whatsAppBase = "https://api.whatsapp.com/send"

type WhatsApp struct{}

// Dispatch returns a click-to-chat link with the message prefilled.
func (WhatsApp) Dispatch(_ context.Context, destination, message string) (string, error) {
	phone := strings.TrimPrefix(strings.TrimSpace(destination), "+")
	if phone == "" {
		return "", ErrNoDestination
	}
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", message)
	return whatsAppBase + "?" + q.Encode(), nil
}
