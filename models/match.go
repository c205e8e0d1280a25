package models

import "time"

// FirstRound is assigned to the very first reported match.
const FirstRound = 1

// Match is one completed match outcome. Immutable once stored.
type Match struct {
	ID        int       `json:"id" db:"id"`
	WinnerID  int       `json:"winner_id" db:"winner_id"`
	LoserID   int       `json:"loser_id" db:"loser_id"`
	Round     int       `json:"round" db:"round_num"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
