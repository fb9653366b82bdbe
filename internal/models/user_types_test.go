package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_SetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("correct horse battery"))
	require.NotEmpty(t, p.Hash)

	ok, err := p.Matches("correct horse battery")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShippingAddress_Valid(t *testing.T) {
	addr := ShippingAddress{
		FullName: "Ada Smith",
		Address:  "1 Main St",
		City:     "Springfield",
		Postcode: "12345",
		Country:  "US",
	}
	assert.True(t, addr.Valid())

	addr.Country = ""
	assert.False(t, addr.Valid())
}
