package cartControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dokhanh15/Thuctap/middleware"
	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CartLineInput is the single line-mutation contract shared by POST /carts
// and PUT /carts/:cartId. Replace switches from increment semantics to an
// explicit quantity set (increase/decrease actions).
type CartLineInput struct {
	ProductID uint `json:"product"`
	Quantity  int  `json:"quantity"`
	UserID    uint `json:"user"`
	Replace   bool `json:"replace"`
}

// GET /carts/user/:userId
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownedUserParam(c)
		if !ok {
			return
		}

		cart, err := canonicalCart(db, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /carts
func CreateCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authID, exists := middleware.AuthedUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartLineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.UserID != 0 && input.UserID != authID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's cart"})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}
		if !productExists(c, db, input.ProductID) {
			return
		}

		cart, err := canonicalCart(db, authID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}
		if err := AddLine(db, cart.CartID, input.ProductID, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		cart, err = canonicalCart(db, authID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

// PUT /carts/:cartId
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authID, exists := middleware.AuthedUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cartID, err := strconv.ParseUint(c.Param("cartId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
			return
		}

		var cart models.Cart
		if err := db.First(&cart, uint(cartID)).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			}
			return
		}
		if cart.UserID != authID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's cart"})
			return
		}

		var input CartLineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !input.Replace && input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}
		if !productExists(c, db, input.ProductID) {
			return
		}

		if input.Replace {
			err = SetQuantity(db, cart.CartID, input.ProductID, input.Quantity)
		} else {
			err = AddLine(db, cart.CartID, input.ProductID, input.Quantity)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		updated, err := canonicalCart(db, authID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /carts/user/:userId/product/:productId
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownedUserParam(c)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		cart, err := canonicalCart(db, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		// Removing an absent line is benign, the canonical cart is the answer
		// either way.
		if err := RemoveLine(db, cart.CartID, uint(productID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		cart, err = canonicalCart(db, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /carts/user/:userId
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownedUserParam(c)
		if !ok {
			return
		}

		cart, err := canonicalCart(db, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if err := ClearLines(db, cart.CartID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		cart, err = canonicalCart(db, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		cart, err := canonicalCart(db, uint(userID), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// ownedUserParam parses :userId and rejects requests whose authenticated
// identity does not match it.
func ownedUserParam(c *gin.Context) (uint, bool) {
	authID, exists := middleware.AuthedUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	if uint(userID) != authID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot access another user's cart"})
		return 0, false
	}
	return authID, true
}

// productExists validates the referenced product, writing the error response
// itself when validation fails.
func productExists(c *gin.Context, db *gorm.DB, productID uint) bool {
	if productID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product is required"})
		return false
	}
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
		}
		return false
	}
	return true
}
