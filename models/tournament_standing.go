package models

// StandingEntry is derived from players and matches on every request and never persisted.
type StandingEntry struct {
	PlayerID int    `json:"id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Matches  int    `json:"matches"`
}

// Pairing - пара соперников следующего раунда.
type Pairing struct {
	Player1ID   int    `json:"id1"`
	Player1Name string `json:"name1"`
	Player2ID   int    `json:"id2"`
	Player2Name string `json:"name2"`
}

type RoundStatus struct {
	Round           int  `json:"round"`
	MatchesPlayed   int  `json:"matches_played"`
	MatchesPerRound int  `json:"matches_per_round"`
	Complete        bool `json:"complete"`
}
