package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string `gorm:"unique;not null" json:"email"`
	Username  string `gorm:"not null" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"not null;default:member" json:"role"`
	Avatar    string `json:"avatar"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Cart      *Cart  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
