package models

import "time"

// StandingsArchive describes a standings snapshot exported to object storage.
type StandingsArchive struct {
	Round      int       `json:"round"`
	JSONURL    string    `json:"json_url"`
	CSVURL     string    `json:"csv_url"`
	Players    int       `json:"players"`
	ArchivedAt time.Time `json:"archived_at"`
}
