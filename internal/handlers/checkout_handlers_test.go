package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brightbasket/brightbasket-golang/internal/checkout"
	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCheckout implements checkout.Service for handler tests.
type fakeCheckout struct {
	url     string
	initErr error

	orderID    int64
	confirmErr error

	gotUserID    int64
	gotEmail     string
	gotShipping  models.ShippingAddress
	gotSessionID string
}

func (f *fakeCheckout) InitiateCheckout(_ context.Context, userID int64, email string, shipping models.ShippingAddress, _ string) (string, error) {
	f.gotUserID = userID
	f.gotEmail = email
	f.gotShipping = shipping
	return f.url, f.initErr
}

func (f *fakeCheckout) ConfirmOrder(_ context.Context, userID int64, sessionID string) (int64, error) {
	f.gotUserID = userID
	f.gotSessionID = sessionID
	return f.orderID, f.confirmErr
}

func newTestRouter(fake *fakeCheckout) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := &Handlers{Checkout: fake, FrontendOrigin: "https://shop.example"}

	withUser := func(c *gin.Context) {
		c.Set("userID", int64(7))
		c.Set("userEmail", "ada@example.com")
		c.Next()
	}

	router := gin.New()
	router.POST("/v1/checkout/session", withUser, h.CreateCheckoutSession)
	router.POST("/v1/checkout/confirm", withUser, h.ConfirmOrder)
	return router
}

const shippingJSON = `{"shippingInfo":{"fullName":"Ada Smith","address":"1 Main St","city":"Springfield","postcode":"12345","country":"US"}}`

func TestCreateCheckoutSession_ReturnsURL(t *testing.T) {
	fake := &fakeCheckout{url: "https://checkout.example/cs_1"}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/session", strings.NewReader(shippingJSON))
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "https://checkout.example/cs_1", response["url"])

	assert.Equal(t, int64(7), fake.gotUserID)
	assert.Equal(t, "ada@example.com", fake.gotEmail)
	assert.Equal(t, "Ada Smith", fake.gotShipping.FullName)
}

func TestCreateCheckoutSession_RejectsMissingShipping(t *testing.T) {
	fake := &fakeCheckout{url: "https://checkout.example/cs_1"}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/session",
		strings.NewReader(`{"shippingInfo":{"fullName":"Ada Smith"}}`))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, fake.gotUserID, "service must not be called on invalid input")
}

func TestCreateCheckoutSession_EmptyCart(t *testing.T) {
	fake := &fakeCheckout{initErr: checkout.ErrEmptyCart}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/session", strings.NewReader(shippingJSON))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cart is empty")
}

func TestCreateCheckoutSession_InsufficientStock(t *testing.T) {
	fake := &fakeCheckout{initErr: &checkout.InsufficientStockError{ProductID: 2, ProductName: "Product B"}}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/session", strings.NewReader(shippingJSON))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Product B")
}

func TestCreateCheckoutSession_ProcessorDown(t *testing.T) {
	fake := &fakeCheckout{initErr: checkout.ErrPaymentSessionFailed}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/session", strings.NewReader(shippingJSON))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestConfirmOrder_ReturnsOrderID(t *testing.T) {
	fake := &fakeCheckout{orderID: 42}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/confirm",
		strings.NewReader(`{"sessionId":"cs_test_1"}`))
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool  `json:"success"`
		OrderID int64 `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, int64(42), response.OrderID)
	assert.Equal(t, "cs_test_1", fake.gotSessionID)
}

func TestConfirmOrder_RejectsMissingSessionID(t *testing.T) {
	fake := &fakeCheckout{orderID: 42}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/confirm", strings.NewReader(`{}`))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestConfirmOrder_ForeignSession(t *testing.T) {
	fake := &fakeCheckout{confirmErr: checkout.ErrNotYourSession}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/confirm",
		strings.NewReader(`{"sessionId":"cs_test_1"}`))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestConfirmOrder_PaymentNotCompleted(t *testing.T) {
	fake := &fakeCheckout{confirmErr: checkout.ErrPaymentNotCompleted}
	router := newTestRouter(fake)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/confirm",
		strings.NewReader(`{"sessionId":"cs_test_1"}`))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusPaymentRequired, recorder.Code)
}
