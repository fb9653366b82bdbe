package payments

import (
	"testing"

	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: "Ada Smith",
		Address:  "1 Main St",
		City:     "Springfield",
		Postcode: "12345",
		Country:  "US",
	}
}

func TestMetadata_RoundTrip(t *testing.T) {
	meta := Metadata{UserID: 42, Shipping: validShipping()}

	raw, err := meta.Encode()
	require.NoError(t, err)
	assert.Equal(t, "42", raw["user_id"])
	assert.Contains(t, raw["shipping_info"], "Ada Smith")

	decoded, err := DecodeMetadata(raw)
	require.NoError(t, err)
	assert.Equal(t, meta, decoded)
}

func TestMetadata_EncodeRejectsMissingUser(t *testing.T) {
	meta := Metadata{Shipping: validShipping()}

	_, err := meta.Encode()

	assert.ErrorIs(t, err, ErrBadMetadata)
}

func TestMetadata_EncodeRejectsIncompleteShipping(t *testing.T) {
	shipping := validShipping()
	shipping.Postcode = ""
	meta := Metadata{UserID: 42, Shipping: shipping}

	_, err := meta.Encode()

	assert.ErrorIs(t, err, ErrBadMetadata)
}

func TestDecodeMetadata_RejectsMalformedUserID(t *testing.T) {
	_, err := DecodeMetadata(map[string]string{
		"user_id":       "not-a-number",
		"shipping_info": `{"fullName":"Ada Smith","address":"1 Main St","city":"Springfield","postcode":"12345","country":"US"}`,
	})

	assert.ErrorIs(t, err, ErrBadMetadata)
}

func TestDecodeMetadata_RejectsMissingShipping(t *testing.T) {
	_, err := DecodeMetadata(map[string]string{"user_id": "42"})

	assert.ErrorIs(t, err, ErrBadMetadata)
}

func TestDecodeMetadata_RejectsEmptyMap(t *testing.T) {
	_, err := DecodeMetadata(map[string]string{})

	assert.ErrorIs(t, err, ErrBadMetadata)
}
