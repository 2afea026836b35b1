package models

// Result — запись результата игрока в игре. Уникальна по паре (game_id, player_id).
type Result struct {
	GameID               int  `db:"game_id"`
	PlayerID             int  `db:"player_id"`
	FinishRank           int  `db:"finish_rank"`
	Points               int  `db:"points"`
	Kos                  int  `db:"kos"`
	EliminatedByPlayerID *int `db:"eliminated_by_player_id"`
}

// ResultRow — строка таблицы результатов, как она отдаётся наружу:
// вместо идентификаторов игроков — их отображаемые имена.
type ResultRow struct {
	FinishRank   int     `json:"finish_rank"`
	Player       string  `json:"player"`
	Points       int     `json:"points"`
	Kos          int     `json:"kos"`
	EliminatedBy *string `json:"eliminated_by"`
}
