package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// VNPayConfig holds the merchant credentials and endpoints for the VNPay
// hosted payment page.
type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

// getVNPayConfig reads the VNPay merchant settings from the environment.
func getVNPayConfig() (VNPayConfig, error) {
	cfg := VNPayConfig{
		TmnCode:    os.Getenv("VNPAY_TMN_CODE"),
		HashSecret: os.Getenv("VNPAY_HASH_SECRET"),
		PayURL:     os.Getenv("VNPAY_URL"),
		ReturnURL:  os.Getenv("VNPAY_RETURN_URL"),
	}
	if cfg.TmnCode == "" || cfg.HashSecret == "" || cfg.PayURL == "" || cfg.ReturnURL == "" {
		return VNPayConfig{}, fmt.Errorf("vnpay configuration missing")
	}
	return cfg, nil
}

// sortedQuery renders params as key=value pairs joined with &, keys in
// ascending order and values unencoded. This exact string is both the
// signing input and the redirect query, per the gateway contract.
func sortedQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, "&")
}

// SignParams computes the hex HMAC-SHA512 of the sorted unencoded query.
func SignParams(secret string, params map[string]string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(sortedQuery(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a callback's vnp_SecureHash against the other
// vnp_* params (vnp_SecureHash and vnp_SecureHashType must already be
// removed from params).
func VerifySignature(secret string, params map[string]string, secureHash string) bool {
	expected := SignParams(secret, params)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(secureHash)))
}

// AmountUnits converts a price into VNPay's amount representation
// (hundredths, so 10000 VND is sent as 1000000).
func AmountUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// BuildPaymentURL assembles the signed redirect URL for a payment.
func BuildPaymentURL(cfg VNPayConfig, orderID, orderInfo string, amount float64, bankCode, locale, clientIP string, now time.Time) string {
	if locale == "" {
		locale = "vn"
	}
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    cfg.TmnCode,
		"vnp_Locale":     locale,
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     orderID,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  "billpayment",
		"vnp_Amount":     strconv.FormatInt(AmountUnits(amount), 10),
		"vnp_ReturnUrl":  cfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": now.Format("20060102150405"),
	}
	if bankCode != "" {
		params["vnp_BankCode"] = bankCode
	}

	secureHash := SignParams(cfg.HashSecret, params)
	return cfg.PayURL + "?" + sortedQuery(params) + "&vnp_SecureHash=" + secureHash
}
