package models

import "time"

const GameStatusScheduled = "scheduled"

// Game — строка списка игр (с именем площадки из JOIN).
type Game struct {
	ID        int       `json:"game_id" db:"game_id"`
	Title     string    `json:"game_title" db:"game_title"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	Status    string    `json:"status" db:"status"`
	VenueName string    `json:"venue_name" db:"venue_name"`
}

// CreatedGame — ответ на создание игры (без таблицы результатов).
type CreatedGame struct {
	ID        int       `json:"game_id"`
	Title     string    `json:"game_title"`
	StartTime time.Time `json:"start_time"`
	Status    string    `json:"status"`
	Venue     VenueRef  `json:"venue"`
}

// GameDetail — полный ответ по одной игре: площадка + таблица результатов.
type GameDetail struct {
	ID        int         `json:"game_id"`
	Title     string      `json:"game_title"`
	StartTime time.Time   `json:"start_time"`
	Status    string      `json:"status"`
	Venue     VenueRef    `json:"venue"`
	Results   []ResultRow `json:"results"`
}
