package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/swiss-system/models"
)

// ErrOddPlayerCount is returned when the ranked list cannot be split into pairs.
// Byes are not supported.
var ErrOddPlayerCount = errors.New("pairing requires an even number of players")

type PairingGenerator interface {
	GeneratePairings(ctx context.Context, standings []models.StandingEntry) ([]models.Pairing, error)

	GetName() string
}
