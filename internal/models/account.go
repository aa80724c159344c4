package models

import "time"

// Conta do gestor/operador do salão (quem acessa o painel)
type Account struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:20;uniqueIndex:idx_accounts_username;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex:idx_accounts_email;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
