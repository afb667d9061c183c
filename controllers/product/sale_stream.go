package productcontroller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/Dokhanh15/Thuctap/pricing"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SaleCountdownStream pushes a product's price view-model once per second
// over a websocket, so clients render the sale countdown without polling.
// The stream closes after the frame that reports the sale as ended.
func SaleCountdownStream(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			now := time.Now()
			display := pricing.DisplayFor(product, now)
			if err := conn.WriteJSON(display); err != nil {
				return
			}
			if !pricing.EffectivePrice(product, now).IsOnSale {
				// ended (or never was on sale): one final frame is enough
				return
			}
			<-ticker.C
		}
	}
}
