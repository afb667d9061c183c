package paymentControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	cartControllers "github.com/Dokhanh15/Thuctap/controllers/cart"
	"github.com/Dokhanh15/Thuctap/middleware"
	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePaymentInput struct {
	BankCode  string `json:"bankCode"`
	OrderInfo string `json:"orderInfo" binding:"required"`
	Locale    string `json:"locale"`
}

// POST /payment/create-payment
//
// The amount is always the live total of the payer's cart, recomputed on the
// server from current product and sale state. The client never supplies it.
func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.AuthedUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CreatePaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cfg, err := getVNPayConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			}
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		now := time.Now()
		amount := cartControllers.CartTotal(cart, now)
		orderID := now.Format("20060102150405") + "-" + uuid.NewString()

		payment := models.Payment{
			OrderID:           orderID,
			UserID:            userID,
			Amount:            amount,
			OrderInfo:         input.OrderInfo,
			BankCode:          input.BankCode,
			TransactionStatus: models.PaymentStatusPending,
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}

		paymentURL := BuildPaymentURL(cfg, orderID, input.OrderInfo, amount, input.BankCode, input.Locale, c.ClientIP(), now)
		c.JSON(http.StatusOK, gin.H{"paymentUrl": paymentURL, "orderId": orderID})
	}
}

// GET /payment/vnpay-return
//
// Browser redirect target after the hosted payment page. Verifies the
// checksum, settles the payment row and clears the payer's cart on success.
func VNPayReturn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, secureHash := callbackParams(c)

		cfg, err := getVNPayConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
			return
		}
		if !VerifySignature(cfg.HashSecret, params, secureHash) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Checksum failed"})
			return
		}

		payment, status := settle(db, params)
		switch status {
		case settleOK:
			c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "orderId": payment.OrderID})
		case settleFailed:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment failed"})
		case settleNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		case settleAmountMismatch:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Order mismatch"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to settle payment"})
		}
	}
}

// POST /payment/vnpay-ipn
//
// Server-to-server confirmation. Same verification as the return URL but
// answers with the gateway's RspCode contract.
func VNPayIPN(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, secureHash := callbackParams(c)

		cfg, err := getVNPayConfig()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"RspCode": "99", "Message": "Unknown error"})
			return
		}
		if !VerifySignature(cfg.HashSecret, params, secureHash) {
			c.JSON(http.StatusOK, gin.H{"RspCode": "97", "Message": "Checksum failed"})
			return
		}

		_, status := settle(db, params)
		switch status {
		case settleOK, settleFailed:
			c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirm Success"})
		case settleNotFound:
			c.JSON(http.StatusOK, gin.H{"RspCode": "01", "Message": "Order not found"})
		case settleAlreadyDone:
			c.JSON(http.StatusOK, gin.H{"RspCode": "02", "Message": "Order already confirmed"})
		case settleAmountMismatch:
			c.JSON(http.StatusOK, gin.H{"RspCode": "04", "Message": "Invalid amount"})
		default:
			c.JSON(http.StatusOK, gin.H{"RspCode": "99", "Message": "Unknown error"})
		}
	}
}

type settleStatus int

const (
	settleOK settleStatus = iota
	settleFailed
	settleNotFound
	settleAlreadyDone
	settleAmountMismatch
	settleError
)

// settle applies a verified gateway callback to the payment row. A "00"
// response code marks the payment paid and empties the payer's cart;
// anything else marks it failed. Settling twice is rejected.
func settle(db *gorm.DB, params map[string]string) (*models.Payment, settleStatus) {
	var payment models.Payment
	if err := db.Where("order_id = ?", params["vnp_TxnRef"]).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, settleNotFound
		}
		return nil, settleError
	}
	if payment.TransactionStatus != models.PaymentStatusPending {
		return &payment, settleAlreadyDone
	}

	gotAmount, err := strconv.ParseInt(params["vnp_Amount"], 10, 64)
	if err != nil || gotAmount != AmountUnits(payment.Amount) {
		return &payment, settleAmountMismatch
	}

	responseCode := params["vnp_ResponseCode"]
	status := models.PaymentStatusFailed
	if responseCode == "00" {
		status = models.PaymentStatusPaid
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"transaction_status": status,
			"transaction_id":     params["vnp_TransactionNo"],
			"vnp_response_code":  responseCode,
		}).Error; err != nil {
			return err
		}
		if status != models.PaymentStatusPaid {
			return nil
		}
		// Checkout complete: empty the cart, keep the row
		var cart models.Cart
		if err := tx.Where("user_id = ?", payment.UserID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return &payment, settleError
	}

	if status == models.PaymentStatusPaid {
		return &payment, settleOK
	}
	return &payment, settleFailed
}

// callbackParams collects the vnp_* query params, splitting off the
// signature fields the checksum must not cover.
func callbackParams(c *gin.Context) (map[string]string, string) {
	params := make(map[string]string)
	var secureHash string
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 || !strings.HasPrefix(key, "vnp_") {
			continue
		}
		switch key {
		case "vnp_SecureHash":
			secureHash = values[0]
		case "vnp_SecureHashType":
			// excluded from the checksum
		default:
			params[key] = values[0]
		}
	}
	return params, secureHash
}
