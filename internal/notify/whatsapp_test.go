package notify

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsApp_Dispatch(t *testing.T) {
	msg := "*Order ID:* ORD-001\nRice & Dal"
	link, err := WhatsApp{}.Dispatch(context.Background(), "+923155770026", msg)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "api.whatsapp.com", u.Host)
	assert.Equal(t, "/send", u.Path)
	assert.Equal(t, "923155770026", u.Query().Get("phone"))
	assert.Equal(t, msg, u.Query().Get("text"))
}

func TestWhatsApp_NoDestination(t *testing.T) {
	_, err := WhatsApp{}.Dispatch(context.Background(), "  ", "hi")
	assert.ErrorIs(t, err, ErrNoDestination)
}
