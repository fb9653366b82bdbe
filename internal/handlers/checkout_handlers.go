package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/brightbasket/brightbasket-golang/internal/checkout"
	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Checkout Handlers ---
//
// These two endpoints are the payment session initiator and the payment
// confirmation handler. Everything price-related happens server-side; the
// request bodies carry shipping details and a session id, never amounts.
//

// CheckoutSessionInput is the JSON body for POST /v1/checkout/session.
type CheckoutSessionInput struct {
	ShippingInfo models.ShippingAddress `json:"shippingInfo" binding:"required"`
}

// CreateCheckoutSession is the handler for POST /v1/checkout/session.
// It validates the server-side cart and returns the processor's redirect URL.
func (h *Handlers) CreateCheckoutSession(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)
	email_raw, _ := c.Get("userEmail")
	email := email_raw.(string)

	var input CheckoutSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	url, err := h.Checkout.InitiateCheckout(c.Request.Context(), userID, email, input.ShippingInfo, h.FrontendOrigin)
	if err != nil {
		h.renderCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ConfirmOrderInput is the JSON body for POST /v1/checkout/confirm.
type ConfirmOrderInput struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// ConfirmOrder is the handler for POST /v1/checkout/confirm. The processor
// redirects the user back with a session id; this verifies it and
// materializes the order. Safe to call repeatedly with the same session id.
func (h *Handlers) ConfirmOrder(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	var input ConfirmOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	orderID, err := h.Checkout.ConfirmOrder(c.Request.Context(), userID, input.SessionID)
	if err != nil {
		h.renderCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": orderID,
	})
}

// renderCheckoutError maps checkout errors to HTTP responses. Store failures
// are logged before being surfaced so an operator can tell whether an order
// write was involved.
func (h *Handlers) renderCheckoutError(c *gin.Context, err error) {
	var stockErr *checkout.InsufficientStockError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error()})
	case errors.Is(err, checkout.ErrNotYourSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Payment session does not belong to this account"})
	case errors.Is(err, checkout.ErrPaymentNotCompleted):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not completed"})
	case errors.Is(err, checkout.ErrPaymentSessionFailed):
		log.Printf("ERROR: payment session creation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not start payment, please try again"})
	default:
		log.Printf("ERROR: checkout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
	}
}
