package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrVenueNameRequired    = errors.New("venue_name is required")
	ErrPlayerNameRequired   = errors.New("display_name is required")
	ErrGameTitleRequired    = errors.New("game_title is required")
	ErrGameStartTimeInvalid = errors.New("start_time is required")
	ErrResultsEmpty         = errors.New("results must contain at least one row")

	// Ошибки конфликтов
	ErrVenueNameConflict  = errors.New("venue already exists")
	ErrPlayerNameConflict = errors.New("player already exists")

	// Ресурс не найден / ссылка на несуществующую сущность
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrGameVenueInvalid    = errors.New("venue_id does not exist")
	ErrResultPlayerInvalid = errors.New("result references an unknown player")

	// Инфраструктура
	ErrAvatarStorageUnavailable = errors.New("avatar storage is not configured")
)
