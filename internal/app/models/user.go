package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           string    `json:"id" db:"id" example:"3b241101-e2bb-4255-8caf-4136c566a962"`
	Email        string    `json:"email" db:"email" example:"student@uni.edu.pe"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
