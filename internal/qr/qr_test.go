package qr_test

import (
	"bytes"
	"testing"

	"bookcourier/internal/qr"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDeliveryQR(t *testing.T) {
	gen := qr.NewGenerator("test-secret")

	code, err := gen.GenerateDeliveryQR(qr.DeliveryCode{
		OrderID:       "order-1",
		TransactionID: "pi_test_1",
		CustomerEmail: "reader@example.com",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, code)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(code, []byte("\x89PNG")))
}

func TestGenerateDeliveryQRSecretLength(t *testing.T) {
	// Any secret length works since the key is hashed to 32 bytes
	for _, secret := range []string{"", "short", "a-much-longer-secret-that-exceeds-thirty-two-bytes"} {
		gen := qr.NewGenerator(secret)
		code, err := gen.GenerateDeliveryQR(qr.DeliveryCode{OrderID: "o", TransactionID: "t", CustomerEmail: "e"})
		assert.NoError(t, err)
		assert.NotEmpty(t, code)
	}
}
