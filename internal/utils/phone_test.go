package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Run("strips punctuation and plus prefix", func(t *testing.T) {
		got, err := NormalizePhone("+62 812-3456-7890")
		require.NoError(t, err)
		assert.Equal(t, "6281234567890", got)
	})

	t.Run("replaces leading zero with country code", func(t *testing.T) {
		got, err := NormalizePhone("081234567890")
		require.NoError(t, err)
		assert.Equal(t, "6281234567890", got)
	})

	t.Run("already normalized number passes through", func(t *testing.T) {
		got, err := NormalizePhone("6281234567890")
		require.NoError(t, err)
		assert.Equal(t, "6281234567890", got)
	})

	t.Run("rejects input without digits", func(t *testing.T) {
		_, err := NormalizePhone("call me maybe")
		assert.Error(t, err)
	})
}

func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "6281*******90", MaskMobile("6281234567890"))
	assert.Equal(t, "******", MaskMobile("123456"))
	assert.Equal(t, "", MaskMobile(""))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"object":"whatsapp_business_account"}`)
	sig := SignPayload(payload, "app-secret")

	assert.True(t, VerifySignature(payload, sig, "app-secret"))
	assert.False(t, VerifySignature(payload, sig, "other-secret"))
	assert.False(t, VerifySignature([]byte("tampered"), sig, "app-secret"))
}
