package models

import "time"

type Admin struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:50;uniqueIndex;not null" json:"usuario"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100" json:"nombre"`
	Email        string `gorm:"size:100" json:"email"`

	WhatsAppNumber string `gorm:"size:30" json:"whatsapp_numero"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
