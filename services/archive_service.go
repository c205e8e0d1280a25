package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/swiss-system/brackets"
	"github.com/Dosada05/swiss-system/models"
	"github.com/Dosada05/swiss-system/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const standingsArchivePrefix = "standings"

// ArchiveService exports the current standings to object storage as JSON and CSV.
type ArchiveService interface {
	ArchiveStandings(ctx context.Context) (*models.StandingsArchive, error)
}

type archiveService struct {
	tournament TournamentService
	uploader   storage.FileUploader // nil when object storage is not configured
	publisher  EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewArchiveService(
	tournament TournamentService,
	uploader storage.FileUploader,
	publisher EventPublisher,
	logger *slog.Logger,
) ArchiveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &archiveService{
		tournament: tournament,
		uploader:   uploader,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *archiveService) ArchiveStandings(ctx context.Context) (archive *models.StandingsArchive, err error) {
	ctx, span := tracer.Start(ctx, "ArchiveService.ArchiveStandings")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if s.uploader == nil {
		return nil, ErrArchiveNotConfigured
	}

	status, standings, err := s.tournament.StandingsSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	jsonBody, err := json.MarshalIndent(standings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings json: %w", err)
	}
	csvBody, err := encodeStandingsCSV(standings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings csv: %w", err)
	}

	base := fmt.Sprintf("%s/round-%d/%s", standingsArchivePrefix, status.Round, uuid.NewString())
	jsonKey, csvKey := base+".json", base+".csv"

	var jsonResult, csvResult *storage.UploadResult
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jsonResult, err = s.uploader.Upload(gCtx, jsonKey, "application/json", bytes.NewReader(jsonBody))
		return err
	})
	g.Go(func() error {
		var err error
		csvResult, err = s.uploader.Upload(gCtx, csvKey, "text/csv", bytes.NewReader(csvBody))
		return err
	})
	if err := g.Wait(); err != nil {
		s.cleanup(ctx, jsonResult, csvResult)
		return nil, fmt.Errorf("failed to upload standings archive: %w", err)
	}

	archive = &models.StandingsArchive{
		Round:      status.Round,
		JSONURL:    jsonResult.Location,
		CSVURL:     csvResult.Location,
		Players:    len(standings),
		ArchivedAt: s.now().UTC(),
	}
	s.logger.InfoContext(ctx, "standings archived",
		slog.Int("round", archive.Round),
		slog.Int("players", archive.Players),
		slog.String("json_key", jsonKey),
	)
	if s.publisher != nil {
		s.publisher.Publish(ctx, brackets.EventStandingsArchived, archive)
	}
	return archive, nil
}

// cleanup removes the half of an archive that made it to storage.
func (s *archiveService) cleanup(ctx context.Context, results ...*storage.UploadResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		if err := s.uploader.Delete(context.WithoutCancel(ctx), r.Key); err != nil {
			s.logger.WarnContext(ctx, "failed to remove partial standings archive", slog.String("key", r.Key), slog.Any("error", err))
		}
	}
}

func encodeStandingsCSV(standings []models.StandingEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "name", "wins", "matches"}); err != nil {
		return nil, err
	}
	for _, e := range standings {
		row := []string{strconv.Itoa(e.PlayerID), e.Name, strconv.Itoa(e.Wins), strconv.Itoa(e.Matches)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
