package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/brightbasket/brightbasket-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and puts the user's ID and email
// into the request context under "userID" and "userEmail".
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		userID, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// The row must still exist; a deleted account's token is worthless.
		var email string
		err = db.QueryRow("SELECT email FROM users WHERE id = ?", userID).Scan(&email)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
			}
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userEmail", email)
		c.Next()
	}
}

// AdminMiddleware requires the authenticated user to hold the admin role.
// Must run after AuthMiddleware.
func AdminMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID_raw, _ := c.Get("userID")
		userID := userID_raw.(int64)

		var role string
		err := db.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify role"})
			c.Abort()
			return
		}

		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
