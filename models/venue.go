package models

import "time"

// Venue представляет площадку, на которой проходят игры.
type Venue struct {
	ID        int       `json:"venue_id" db:"venue_id"`
	Name      string    `json:"venue_name" db:"venue_name"`
	Address   *string   `json:"address" db:"address"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VenueRef — краткая ссылка на площадку внутри ответа по игре.
type VenueRef struct {
	ID   int    `json:"venue_id"`
	Name string `json:"venue_name"`
}
