package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductWhereClause(t *testing.T) {
	assert.Equal(t, "id = ?", productWhereClause("42"))
	assert.Equal(t, "slug = ?", productWhereClause("wool-scarf"))

	// A slug with a leading digit must stay a slug lookup; MySQL would
	// otherwise coerce it to the integer 2 and match product id 2.
	assert.Equal(t, "slug = ?", productWhereClause("2-pack-socks"))
}
