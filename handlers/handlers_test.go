package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/swiss-system/models"
	"github.com/Dosada05/swiss-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTournamentService returns canned values; err overrides every result.
type stubTournamentService struct {
	err       error
	players   []*models.Player
	matches   []*models.Match
	standings []models.StandingEntry
	pairings  []models.Pairing
	round     *models.RoundStatus

	reported   [2]int
	listRound  *int
	cleared    []string
	registered []string
}

var _ services.TournamentService = (*stubTournamentService)(nil)

func (s *stubTournamentService) RegisterPlayer(_ context.Context, name string) (*models.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.registered = append(s.registered, name)
	return &models.Player{ID: len(s.registered), Name: name, CreatedAt: time.Unix(0, 0).UTC()}, nil
}

func (s *stubTournamentService) GetPlayer(_ context.Context, id int) (*models.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", services.ErrPlayerNotFound, id)
}

func (s *stubTournamentService) CountPlayers(context.Context) (int, error) {
	return len(s.players), s.err
}

func (s *stubTournamentService) ListPlayers(context.Context) ([]*models.Player, error) {
	return s.players, s.err
}

func (s *stubTournamentService) DeletePlayers(context.Context) error {
	s.cleared = append(s.cleared, "players")
	return s.err
}

func (s *stubTournamentService) DeleteMatches(context.Context) error {
	s.cleared = append(s.cleared, "matches")
	return s.err
}

func (s *stubTournamentService) ReportMatch(_ context.Context, winnerID, loserID int) (*models.Match, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.reported = [2]int{winnerID, loserID}
	return &models.Match{ID: 1, WinnerID: winnerID, LoserID: loserID, Round: models.FirstRound}, nil
}

func (s *stubTournamentService) ListMatches(_ context.Context, round *int) ([]*models.Match, error) {
	s.listRound = round
	return s.matches, s.err
}

func (s *stubTournamentService) PlayerStandings(context.Context) ([]models.StandingEntry, error) {
	return s.standings, s.err
}

func (s *stubTournamentService) SwissPairings(context.Context) ([]models.Pairing, error) {
	return s.pairings, s.err
}

func (s *stubTournamentService) CurrentRound(context.Context) (*models.RoundStatus, error) {
	return s.round, s.err
}

func (s *stubTournamentService) StandingsSnapshot(context.Context) (*models.RoundStatus, []models.StandingEntry, error) {
	return s.round, s.standings, s.err
}

type stubArchiveService struct {
	archive *models.StandingsArchive
	err     error
}

func (s stubArchiveService) ArchiveStandings(context.Context) (*models.StandingsArchive, error) {
	return s.archive, s.err
}

func newTestRouter(ts services.TournamentService, as services.ArchiveService) http.Handler {
	players := NewPlayerHandler(ts)
	matches := NewMatchHandler(ts)
	standings := NewStandingsHandler(ts, as)

	r := chi.NewRouter()
	r.Post("/players", players.RegisterPlayer)
	r.Get("/players", players.ListPlayers)
	r.Get("/players/count", players.CountPlayers)
	r.Get("/players/{playerID}", players.GetPlayer)
	r.Delete("/players", players.DeletePlayers)
	r.Post("/matches", matches.ReportMatch)
	r.Get("/matches", matches.ListMatches)
	r.Delete("/matches", matches.DeleteMatches)
	r.Get("/standings", standings.PlayerStandings)
	r.Get("/pairings", standings.SwissPairings)
	r.Get("/rounds/current", standings.CurrentRound)
	r.Post("/standings/archive", standings.ArchiveStandings)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]json.RawMessage
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}
	return rec, payload
}

func TestRegisterPlayerHandler(t *testing.T) {
	svc := &stubTournamentService{}
	h := newTestRouter(svc, stubArchiveService{})

	rec, body := do(t, h, http.MethodPost, "/players", `{"name": "Twilight Sparkle"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var player models.Player
	require.NoError(t, json.Unmarshal(body["player"], &player))
	assert.Equal(t, "Twilight Sparkle", player.Name)
	assert.Equal(t, []string{"Twilight Sparkle"}, svc.registered)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"malformed", `{"name":`, http.StatusBadRequest},
		{"unknown field", `{"nick": "x"}`, http.StatusBadRequest},
		{"blank name", `{"name": "  "}`, http.StatusUnprocessableEntity},
		{"two values", `{"name": "a"}{"name": "b"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, "/players", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, body, "error")
		})
	}
}

func TestPlayerReadHandlers(t *testing.T) {
	svc := &stubTournamentService{players: []*models.Player{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	h := newTestRouter(svc, stubArchiveService{})

	rec, body := do(t, h, http.MethodGet, "/players/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `2`, string(body["count"]))

	rec, body = do(t, h, http.MethodGet, "/players", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var players []models.Player
	require.NoError(t, json.Unmarshal(body["players"], &players))
	assert.Len(t, players, 2)

	rec, _ = do(t, h, http.MethodGet, "/players/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/players/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/players/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportMatchHandler(t *testing.T) {
	svc := &stubTournamentService{}
	h := newTestRouter(svc, stubArchiveService{})

	rec, body := do(t, h, http.MethodPost, "/matches", `{"winner_id": 3, "loser_id": 4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, [2]int{3, 4}, svc.reported)
	var match models.Match
	require.NoError(t, json.Unmarshal(body["match"], &match))
	assert.Equal(t, models.FirstRound, match.Round)

	rec, body = do(t, h, http.MethodPost, "/matches", `{"winner_id": 3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"loser_id": "must be provided"}`, string(body["error"]))
}

func TestListMatchesRoundFilter(t *testing.T) {
	svc := &stubTournamentService{matches: []*models.Match{}}
	h := newTestRouter(svc, stubArchiveService{})

	rec, _ := do(t, h, http.MethodGet, "/matches?round=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listRound)
	assert.Equal(t, 2, *svc.listRound)

	rec, _ = do(t, h, http.MethodGet, "/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.listRound)

	rec, _ = do(t, h, http.MethodGet, "/matches?round=last", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHandlers(t *testing.T) {
	svc := &stubTournamentService{}
	h := newTestRouter(svc, stubArchiveService{})

	rec, _ := do(t, h, http.MethodDelete, "/matches", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, h, http.MethodDelete, "/players", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"matches", "players"}, svc.cleared)
}

func TestStandingsAndPairingsHandlers(t *testing.T) {
	svc := &stubTournamentService{
		standings: []models.StandingEntry{
			{PlayerID: 1, Name: "A", Wins: 1, Matches: 1},
			{PlayerID: 3, Name: "C", Wins: 1, Matches: 1},
		},
		pairings: []models.Pairing{{Player1ID: 1, Player1Name: "A", Player2ID: 3, Player2Name: "C"}},
		round:    &models.RoundStatus{Round: 1, MatchesPlayed: 1, MatchesPerRound: 1, Complete: true},
	}
	h := newTestRouter(svc, stubArchiveService{})

	rec, body := do(t, h, http.MethodGet, "/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"A","wins":1,"matches":1},{"id":3,"name":"C","wins":1,"matches":1}]`, string(body["standings"]))

	rec, body = do(t, h, http.MethodGet, "/pairings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id1":1,"name1":"A","id2":3,"name2":"C"}]`, string(body["pairings"]))

	rec, body = do(t, h, http.MethodGet, "/rounds/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"round":1,"matches_played":1,"matches_per_round":1,"complete":true}`, string(body["round"]))
}

func TestArchiveHandler(t *testing.T) {
	archive := &models.StandingsArchive{Round: 2, JSONURL: "https://cdn/a.json", CSVURL: "https://cdn/a.csv", Players: 4}
	h := newTestRouter(&stubTournamentService{}, stubArchiveService{archive: archive})
	rec, body := do(t, h, http.MethodPost, "/standings/archive", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, string(body["archive"]), "https://cdn/a.csv")

	h = newTestRouter(&stubTournamentService{}, stubArchiveService{err: services.ErrArchiveNotConfigured})
	rec, _ = do(t, h, http.MethodPost, "/standings/archive", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("%w: id 9", services.ErrPlayerNotFound), http.StatusNotFound},
		{"same player", services.ErrSamePlayer, http.StatusBadRequest},
		{"validation", services.ErrValidationFailed, http.StatusBadRequest},
		{"odd count", services.ErrOddPlayerCount, http.StatusUnprocessableEntity},
		{"integrity", services.ErrIntegrity, http.StatusConflict},
		{"concurrent", services.ErrConcurrentUpdate, http.StatusConflict},
		{"unavailable", services.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&stubTournamentService{err: tt.err}, stubArchiveService{})
			rec, body := do(t, h, http.MethodGet, "/pairings", "")
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, body, "error")
		})
	}
}

func TestUnavailableSetsRetryAfter(t *testing.T) {
	h := newTestRouter(&stubTournamentService{err: services.ErrStorageUnavailable}, stubArchiveService{})
	rec, _ := do(t, h, http.MethodGet, "/standings", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("Retry-After"))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://swiss.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req), "no origin header")

	req.Header.Set("Origin", "https://swiss.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
