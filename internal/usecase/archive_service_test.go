package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Ndwalker8/NFL-100/internal/domain/rawdata"
)

type stubRawDataRepo struct {
	items []rawdata.Payload
	err   error
}

func (s *stubRawDataRepo) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	if s.err != nil {
		return s.err
	}
	s.items = append(s.items, items...)
	return nil
}

func TestArchive_PersistsHashedPayload(t *testing.T) {
	t.Parallel()

	repo := &stubRawDataRepo{}
	svc := NewArchiveService(repo, nil)

	svc.Archive(context.Background(), "espn", "api_response", "/scoreboard?dates=20260115", []byte(`{"events":[]}`))

	if len(repo.items) != 1 {
		t.Fatalf("items=%d", len(repo.items))
	}
	item := repo.items[0]
	if item.Source != "espn" || item.EntityKey != "/scoreboard?dates=20260115" {
		t.Fatalf("item=%+v", item)
	}
	if len(item.PayloadHash) != 64 {
		t.Fatalf("hash=%q, want hex sha256", item.PayloadHash)
	}
	if item.FetchedAt.IsZero() {
		t.Fatal("fetched_at not set")
	}
}

func TestArchive_RepoFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	repo := &stubRawDataRepo{err: errors.New("connection refused")}
	svc := NewArchiveService(repo, nil)

	// Must not panic or propagate.
	svc.Archive(context.Background(), "nflverse", "csv_snapshot", "player_stats_2024.csv.gz", []byte("season,week"))
}

func TestArchive_SkipsEmptyBodies(t *testing.T) {
	t.Parallel()

	repo := &stubRawDataRepo{}
	NewArchiveService(repo, nil).Archive(context.Background(), "espn", "api_response", "/teams", nil)

	if len(repo.items) != 0 {
		t.Fatalf("items=%d, want empty body skipped", len(repo.items))
	}
}
