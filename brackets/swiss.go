package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-system/models"
)

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// GeneratePairings pairs neighbours of the ranked standings: positions (0,1),
// (2,3), (4,5) and so on. Earlier ranked pairs come first. Rematches are not
// avoided.
func (g *SwissGenerator) GeneratePairings(ctx context.Context, standings []models.StandingEntry) ([]models.Pairing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(standings)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddPlayerCount, len(standings))
	}

	pairings := make([]models.Pairing, 0, len(standings)/2)
	for i := 0; i+1 < len(standings); i += 2 {
		first, second := standings[i], standings[i+1]
		pairings = append(pairings, models.Pairing{
			Player1ID:   first.PlayerID,
			Player1Name: first.Name,
			Player2ID:   second.PlayerID,
			Player2Name: second.Name,
		})
	}
	return pairings, nil
}
