package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware("https://shop.example"))
	router.POST("/v1/checkout/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestCORSMiddleware_PreflightReturns204(t *testing.T) {
	router := corsRouter()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("OPTIONS", "/v1/checkout/session", nil)
	request.Header.Set("Origin", "https://shop.example")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://shop.example", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSMiddleware_PassesThroughNonPreflight(t *testing.T) {
	router := corsRouter()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/v1/checkout/session", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "https://shop.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}
