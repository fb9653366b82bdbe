package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

//
// --- Public Product Handlers ---
//

// GetProducts is the handler for GET /v1/products.
func (h *Handlers) GetProducts(c *gin.Context) {
	query := `
		SELECT id, name, slug, description, price, stock, image_url, created_at, updated_at
		FROM products
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var imageURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock,
			&imageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating products"})
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// productWhereClause picks the lookup column for a path parameter. A slug
// like "2-pack-socks" must never be coerced to the integer 2 and match the
// wrong row, so only a value that is entirely numeric is treated as an id.
func productWhereClause(param string) string {
	if _, err := strconv.ParseInt(param, 10, 64); err == nil {
		return "id = ?"
	}
	return "slug = ?"
}

// GetProduct is the handler for GET /v1/products/:id. Accepts a numeric id
// or a slug.
func (h *Handlers) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	var p models.Product
	var imageURL sql.NullString
	query := `
		SELECT id, name, slug, description, price, stock, image_url, created_at, updated_at
		FROM products
		WHERE ` + productWhereClause(productID)
	err := h.DB.QueryRow(query, productID).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock,
		&imageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

//
// --- Admin Product Handlers ---
//

// ProductInput is the JSON body for creating or updating a product.
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
	ImageURL    *string         `json:"imageUrl"`
}

// CreateProduct is the handler for POST /v1/admin/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	now := time.Now()
	query := `
		INSERT INTO products (name, slug, description, price, stock, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := h.DB.Exec(query,
		input.Name, slug.Make(input.Name), input.Description, input.Price, input.Stock,
		input.ImageURL, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	productID, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Product created",
		"productId": productID,
	})
}

// UpdateProduct is the handler for PUT /v1/admin/products/:id.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	query := `
		UPDATE products
		SET name = ?, slug = ?, description = ?, price = ?, stock = ?, image_url = ?, updated_at = ?
		WHERE id = ?`
	result, err := h.DB.Exec(query,
		input.Name, slug.Make(input.Name), input.Description, input.Price, input.Stock,
		input.ImageURL, time.Now(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Could also mean an update with identical values; re-check existence.
		var exists int64
		if err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", productID).Scan(&exists); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct is the handler for DELETE /v1/admin/products/:id.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	// Cart rows for this product go with it; order_items keep their snapshot.
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cart WHERE product_id = ?", productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart references"})
		return
	}

	result, err := tx.Exec("DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
