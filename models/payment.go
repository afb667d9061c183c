package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

type Payment struct {
	ID                uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           string        `gorm:"uniqueIndex;not null" json:"orderId"` // vnp_TxnRef
	UserID            uint          `gorm:"index" json:"user"`
	Amount            float64       `gorm:"not null" json:"amount"`
	OrderInfo         string        `gorm:"not null" json:"orderInfo"`
	BankCode          string        `json:"bankCode"`
	TransactionStatus PaymentStatus `gorm:"default:Pending" json:"transactionStatus"`
	TransactionID     string        `json:"transactionId"`
	VnpResponseCode   string        `json:"vnpResponseCode"`
	CreatedAt         time.Time     `json:"createdAt"`
}
