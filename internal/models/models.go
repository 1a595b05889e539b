package models

import "time"

// RuntimeConfig is one tunable override row. Value is parsed according
// to ValueType ("int", "float", "bool", "duration").
type RuntimeConfig struct {
	Key         string    `db:"key" json:"key"`
	Value       string    `db:"value" json:"value"`
	ValueType   string    `db:"value_type" json:"value_type"`
	Description string    `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TableSummary is what the HTTP API returns when a table is opened.
type TableSummary struct {
	TableID   string    `json:"table_id"`
	Token     string    `json:"token"`
	WSURL     string    `json:"ws_url"`
	Player1   string    `json:"player1"`
	Player2   string    `json:"player2"`
	CreatedAt time.Time `json:"created_at"`
}
