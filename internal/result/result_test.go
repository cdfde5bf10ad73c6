package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/khattak-mart/internal/validation"
)

func TestConstructors(t *testing.T) {
	ok := OK("done", 7)
	assert.True(t, ok.Success)
	assert.Equal(t, 7, *ok.Data)
	assert.Equal(t, KindNone, ok.Kind)

	f := Fail[int]("nope")
	assert.False(t, f.Success)
	assert.Nil(t, f.Data)
	assert.Equal(t, KindInternal, f.Kind)

	assert.Equal(t, KindNotFound, NotFound[int]("gone").Kind)
	assert.Equal(t, KindConflict, Conflict[int]("no").Kind)

	verr := &validation.Error{}
	verr.Add("phone", "bad")
	inv := Invalid[int](verr)
	assert.False(t, inv.Success)
	assert.Equal(t, KindInvalid, inv.Kind)
	assert.Equal(t, "Invalid form data.", inv.Message)
	assert.Equal(t, []string{"bad"}, inv.Errors["phone"])
}

func TestEnvelopeJSON(t *testing.T) {
	b, err := json.Marshal(NotFound[int]("Order not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Order not found"}`, string(b))
}
