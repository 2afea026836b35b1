package models

import "time"

// Player представляет игрока.
type Player struct {
	ID          int       `json:"player_id" db:"player_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	AvatarURL   *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
