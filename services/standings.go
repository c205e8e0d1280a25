package services

import (
	"sort"

	"github.com/Dosada05/swiss-system/models"
)

// BuildStandings derives one entry per registered player from the match log.
// Players without matches are kept with zero wins and zero matches.
//
// Ordering: wins descending, then name ascending, then id ascending.
func BuildStandings(players []*models.Player, matches []*models.Match) []models.StandingEntry {
	standings := make([]models.StandingEntry, 0, len(players))
	for _, p := range players {
		if p == nil {
			continue
		}
		standings = append(standings, models.StandingEntry{PlayerID: p.ID, Name: p.Name})
	}

	index := make(map[int]*models.StandingEntry, len(standings))
	for i := range standings {
		index[standings[i].PlayerID] = &standings[i]
	}

	for _, m := range matches {
		if m == nil {
			continue
		}
		if winner := index[m.WinnerID]; winner != nil {
			winner.Wins++
			winner.Matches++
		}
		if loser := index[m.LoserID]; loser != nil {
			loser.Matches++
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PlayerID < b.PlayerID
	})
	return standings
}
