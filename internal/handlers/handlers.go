package handlers

import (
	"database/sql"

	"github.com/brightbasket/brightbasket-golang/internal/checkout"
)

// Handlers holds all dependencies for the HTTP handlers.
type Handlers struct {
	DB       *sql.DB
	Checkout checkout.Service

	// FrontendOrigin is where the payment processor sends the user back to
	// after a hosted checkout, and the only origin CORS admits.
	FrontendOrigin string
}
