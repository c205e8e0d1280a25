package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Dosada05/swiss-system/brackets"
	"github.com/Dosada05/swiss-system/db"
	"github.com/Dosada05/swiss-system/metrics"
	"github.com/Dosada05/swiss-system/models"
	"github.com/Dosada05/swiss-system/repositories"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxPlayerNameLength = 255
	// Ids are stored as 32-bit integers in both schemas.
	maxPlayerID = math.MaxInt32
)

var tracer = otel.Tracer("github.com/Dosada05/swiss-system/services")

// EventPublisher receives notifications after a mutation has been committed.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

type TournamentService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	// DeletePlayers removes every player together with their matches.
	DeletePlayers(ctx context.Context) error
	DeleteMatches(ctx context.Context) error
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	ListMatches(ctx context.Context, round *int) ([]*models.Match, error)
	PlayerStandings(ctx context.Context) ([]models.StandingEntry, error)
	SwissPairings(ctx context.Context) ([]models.Pairing, error)
	CurrentRound(ctx context.Context) (*models.RoundStatus, error)
	// StandingsSnapshot returns the round status and standings read in one transaction.
	StandingsSnapshot(ctx context.Context) (*models.RoundStatus, []models.StandingEntry, error)
}

type tournamentService struct {
	db         *sql.DB
	dialect    repositories.Dialect
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	generator  brackets.PairingGenerator
	publisher  EventPublisher
	metrics    metrics.TournamentMetrics
	logger     *slog.Logger
}

func NewTournamentService(
	db *sql.DB, // For transaction management
	dialect repositories.Dialect,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.PairingGenerator,
	publisher EventPublisher,
	m metrics.TournamentMetrics,
	logger *slog.Logger,
) TournamentService {
	if m == nil {
		m = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		db:         db,
		dialect:    dialect,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		generator:  generator,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, name string) (player *models.Player, err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.RegisterPlayer")
	defer func() { s.finishSpan(span, "register_player", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if len(name) > maxPlayerNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d bytes", ErrValidationFailed, maxPlayerNameLength)
	}
	if strings.ContainsRune(name, 0) {
		return nil, fmt.Errorf("%w: name must not contain NUL characters", ErrValidationFailed)
	}

	player = &models.Player{Name: name}
	if err = s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, handleRepositoryError(err)
	}

	s.metrics.RecordPlayerRegistered()
	s.logger.InfoContext(ctx, "player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	s.publish(ctx, brackets.EventPlayerRegistered, player)
	return player, nil
}

func (s *tournamentService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if id <= 0 || id > maxPlayerID {
		return nil, fmt.Errorf("%w: player id must be in [1, %d]", ErrValidationFailed, maxPlayerID)
	}
	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return player, nil
}

func (s *tournamentService) CountPlayers(ctx context.Context) (int, error) {
	n, err := s.playerRepo.Count(ctx, nil)
	if err != nil {
		return 0, handleRepositoryError(err)
	}
	return n, nil
}

func (s *tournamentService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx, nil)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return players, nil
}

func (s *tournamentService) DeletePlayers(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.DeletePlayers")
	defer func() { s.finishSpan(span, "delete_players", err) }()

	err = db.WithTx(ctx, s.db, s.dialect.TxOptions(false), func(tx *sql.Tx) error {
		if err := s.matchRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		return s.playerRepo.DeleteAll(ctx, tx)
	})
	if err != nil {
		return handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "all players deleted")
	s.publish(ctx, brackets.EventPlayersCleared, nil)
	return nil
}

func (s *tournamentService) DeleteMatches(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.DeleteMatches")
	defer func() { s.finishSpan(span, "delete_matches", err) }()

	// Wins are derived from the match log only, so there is no counter to reset.
	if err = s.matchRepo.DeleteAll(ctx, nil); err != nil {
		return handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "all matches deleted")
	s.publish(ctx, brackets.EventMatchesCleared, nil)
	return nil
}

func (s *tournamentService) ReportMatch(ctx context.Context, winnerID, loserID int) (match *models.Match, err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.ReportMatch",
		trace.WithAttributes(attribute.Int("winner_id", winnerID), attribute.Int("loser_id", loserID)))
	defer func() { s.finishSpan(span, "report_match", err) }()

	if winnerID <= 0 || loserID <= 0 || winnerID > maxPlayerID || loserID > maxPlayerID {
		return nil, fmt.Errorf("%w: player ids must be in [1, %d] (winner %d, loser %d)",
			ErrValidationFailed, maxPlayerID, winnerID, loserID)
	}
	if winnerID == loserID {
		return nil, fmt.Errorf("%w: player %d", ErrSamePlayer, winnerID)
	}

	match = &models.Match{WinnerID: winnerID, LoserID: loserID}
	err = db.WithTx(ctx, s.db, s.dialect.TxOptions(false), func(tx *sql.Tx) error {
		existing, err := s.playerRepo.CountExisting(ctx, tx, winnerID, loserID)
		if err != nil {
			return err
		}
		if existing != 2 {
			// Reported as not found; the chain also carries ErrIntegrity for callers that
			// treat an unknown reference as a broken match log.
			return fmt.Errorf("%w: %w: winner %d or loser %d is not registered",
				ErrPlayerNotFound, ErrIntegrity, winnerID, loserID)
		}

		round, err := s.roundForNextMatch(ctx, tx)
		if err != nil {
			return err
		}
		match.Round = round
		return s.matchRepo.Create(ctx, tx, match)
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	s.metrics.RecordMatchReported(match.Round)
	s.logger.InfoContext(ctx, "match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", winnerID),
		slog.Int("loser_id", loserID),
		slog.Int("round", match.Round),
	)
	s.publish(ctx, brackets.EventMatchReported, match)
	return match, nil
}

// roundForNextMatch keeps the latest round open until it holds playerCount/2
// matches; an empty log starts at the first round.
func (s *tournamentService) roundForNextMatch(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	status, err := s.roundStatus(ctx, exec)
	if err != nil {
		return 0, err
	}
	if status.MatchesPlayed > 0 && status.Complete {
		return status.Round + 1, nil
	}
	return status.Round, nil
}

func (s *tournamentService) roundStatus(ctx context.Context, exec repositories.SQLExecutor) (*models.RoundStatus, error) {
	playerCount, err := s.playerRepo.Count(ctx, exec)
	if err != nil {
		return nil, err
	}
	status := &models.RoundStatus{Round: models.FirstRound, MatchesPerRound: playerCount / 2}

	maxRound, ok, err := s.matchRepo.MaxRound(ctx, exec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return status, nil
	}

	played, err := s.matchRepo.CountInRound(ctx, exec, maxRound)
	if err != nil {
		return nil, err
	}
	status.Round = maxRound
	status.MatchesPlayed = played
	status.Complete = status.MatchesPerRound > 0 && played >= status.MatchesPerRound
	return status, nil
}

func (s *tournamentService) CurrentRound(ctx context.Context) (*models.RoundStatus, error) {
	var status *models.RoundStatus
	err := db.WithTx(ctx, s.db, s.dialect.TxOptions(true), func(tx *sql.Tx) error {
		var err error
		status, err = s.roundStatus(ctx, tx)
		return err
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return status, nil
}

func (s *tournamentService) ListMatches(ctx context.Context, round *int) ([]*models.Match, error) {
	if round != nil && *round <= 0 {
		return nil, fmt.Errorf("%w: round must be positive", ErrValidationFailed)
	}
	matches, err := s.matchRepo.List(ctx, nil, round)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return matches, nil
}

func (s *tournamentService) PlayerStandings(ctx context.Context) (standings []models.StandingEntry, err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.PlayerStandings")
	defer func() { s.finishSpan(span, "player_standings", err) }()

	err = db.WithTx(ctx, s.db, s.dialect.TxOptions(true), func(tx *sql.Tx) error {
		var err error
		standings, err = s.standings(ctx, tx, span)
		return err
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return standings, nil
}

func (s *tournamentService) StandingsSnapshot(ctx context.Context) (status *models.RoundStatus, standings []models.StandingEntry, err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.StandingsSnapshot")
	defer func() { s.finishSpan(span, "standings_snapshot", err) }()

	err = db.WithTx(ctx, s.db, s.dialect.TxOptions(true), func(tx *sql.Tx) error {
		var err error
		if status, err = s.roundStatus(ctx, tx); err != nil {
			return err
		}
		standings, err = s.standings(ctx, tx, span)
		return err
	})
	if err != nil {
		return nil, nil, handleRepositoryError(err)
	}
	return status, standings, nil
}

// standings reads players and matches through the same executor so a
// concurrent report is either fully visible or not at all.
func (s *tournamentService) standings(ctx context.Context, exec repositories.SQLExecutor, span trace.Span) ([]models.StandingEntry, error) {
	started := time.Now()
	players, err := s.playerRepo.List(ctx, exec)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.List(ctx, exec, nil)
	if err != nil {
		return nil, err
	}

	standings := BuildStandings(players, matches)
	s.metrics.RecordStandingsDuration(time.Since(started))
	span.SetAttributes(attribute.Int("players", len(standings)), attribute.Int("matches", len(matches)))
	return standings, nil
}

func (s *tournamentService) SwissPairings(ctx context.Context) (pairings []models.Pairing, err error) {
	ctx, span := tracer.Start(ctx, "TournamentService.SwissPairings")
	defer func() { s.finishSpan(span, "swiss_pairings", err) }()

	standings, err := s.PlayerStandings(ctx)
	if err != nil {
		return nil, err
	}

	pairings, err = s.generator.GeneratePairings(ctx, standings)
	if err != nil {
		return nil, fmt.Errorf("%s pairing failed for %d players: %w", s.generator.GetName(), len(standings), err)
	}

	s.metrics.RecordPairingsGenerated(len(pairings))
	s.logger.DebugContext(ctx, "pairings generated", slog.Int("pairs", len(pairings)))
	return pairings, nil
}

func (s *tournamentService) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, eventType, payload)
}

func (s *tournamentService) finishSpan(span trace.Span, operation string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.RecordOperationFailure(operation)
	}
	span.End()
}
