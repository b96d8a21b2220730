package users

import "time"

type User struct {
	ID           int
	UserName     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
