package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string          `json:"name" validate:"min=2" msg:"Name must be at least 2 characters."`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
	Kind  string          `json:"kind" validate:"oneof=a b"`
}

func TestStruct_OK(t *testing.T) {
	require.NoError(t, Struct(form{Name: "ok", Price: decimal.NewFromInt(1), Kind: "a"}))
}

func TestStruct_FieldMessages(t *testing.T) {
	err := Struct(&form{Name: "x", Price: decimal.Zero, Kind: "c"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	fields := FieldErrors(err)
	assert.Equal(t, []string{"Name must be at least 2 characters."}, fields["name"])
	assert.Equal(t, []string{"price must be greater than 0."}, fields["price"])
	assert.Len(t, fields["kind"], 1)
}

func TestError_AddAndOrNil(t *testing.T) {
	var e Error
	assert.NoError(t, e.OrNil())

	e.Add("cart", "Your cart is empty.")
	err := e.OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart: Your cart is empty.")
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestCents(t *testing.T) {
	for _, v := range []string{"1", "1.5", "1.50", "1.500", "280.99"} {
		assert.True(t, Cents(decimal.RequireFromString(v)), v)
	}
	for _, v := range []string{"1.999", "0.333", "0.001"} {
		assert.False(t, Cents(decimal.RequireFromString(v)), v)
	}
}
