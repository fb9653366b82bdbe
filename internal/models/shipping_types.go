package models

// ShippingAddress is the shipping block captured at checkout. It travels
// through payment session metadata and is persisted on the order as JSON,
// so it is validated both when the session is created and when the
// confirmation reads it back.
type ShippingAddress struct {
	FullName string `json:"fullName" binding:"required"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	Postcode string `json:"postcode" binding:"required"`
	Country  string `json:"country" binding:"required"`
	Phone    string `json:"phone,omitempty"`
}

// Valid reports whether the address carries the required fields. gin's
// binding tags cover the request path; this covers the metadata read-back
// path where the struct arrives from the payment processor, not a request.
func (s ShippingAddress) Valid() bool {
	return s.FullName != "" && s.Address != "" && s.City != "" &&
		s.Postcode != "" && s.Country != ""
}
