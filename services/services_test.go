package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/Dosada05/swiss-system/brackets"
	"github.com/Dosada05/swiss-system/db"
	"github.com/Dosada05/swiss-system/metrics"
	"github.com/Dosada05/swiss-system/repositories"
	"github.com/stretchr/testify/require"
)

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	conn       *sql.DB
	players    repositories.PlayerRepository
	matches    repositories.MatchRepository
	publisher  *recordingPublisher
	tournament TournamentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn, err := db.Connect(db.DriverSQLite, "file::memory:", db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, db.DriverSQLite))

	env := &testEnv{
		conn:      conn,
		players:   repositories.NewPlayerRepository(conn, repositories.DialectSQLite),
		matches:   repositories.NewMatchRepository(conn, repositories.DialectSQLite),
		publisher: &recordingPublisher{},
	}
	env.tournament = NewTournamentService(
		conn,
		repositories.DialectSQLite,
		env.players,
		env.matches,
		brackets.NewSwissGenerator(),
		env.publisher,
		metrics.NewNoop(),
		nil,
	)
	return env
}

func (e *testEnv) register(t *testing.T, names ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(names))
	for _, name := range names {
		p, err := e.tournament.RegisterPlayer(context.Background(), name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}
