package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/brightbasket/brightbasket-golang/internal/models"
)

const (
	metaUserID       = "user_id"
	metaShippingInfo = "shipping_info"
)

var ErrBadMetadata = errors.New("payment session metadata is missing or malformed")

// Metadata links a payment session back to the user and shipping details so
// the confirmation step can recover context without re-trusting client state.
// It is validated on both write and read: a session whose metadata does not
// round-trip is never turned into an order.
type Metadata struct {
	UserID   int64
	Shipping models.ShippingAddress
}

// Encode renders the metadata as the string map the processor stores.
func (m Metadata) Encode() (map[string]string, error) {
	if m.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id %d", ErrBadMetadata, m.UserID)
	}
	if !m.Shipping.Valid() {
		return nil, fmt.Errorf("%w: incomplete shipping address", ErrBadMetadata)
	}

	shippingJSON, err := json.Marshal(m.Shipping)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}

	return map[string]string{
		metaUserID:       strconv.FormatInt(m.UserID, 10),
		metaShippingInfo: string(shippingJSON),
	}, nil
}

// DecodeMetadata parses the string map read back from the processor.
func DecodeMetadata(raw map[string]string) (Metadata, error) {
	var m Metadata

	userID, err := strconv.ParseInt(raw[metaUserID], 10, 64)
	if err != nil || userID <= 0 {
		return m, fmt.Errorf("%w: bad user_id %q", ErrBadMetadata, raw[metaUserID])
	}

	if err := json.Unmarshal([]byte(raw[metaShippingInfo]), &m.Shipping); err != nil {
		return m, fmt.Errorf("%w: bad shipping_info: %v", ErrBadMetadata, err)
	}
	if !m.Shipping.Valid() {
		return m, fmt.Errorf("%w: incomplete shipping address", ErrBadMetadata)
	}

	m.UserID = userID
	return m, nil
}
