package models

import "time"

// Player - зарегистрированный участник турнира. После создания не изменяется.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
