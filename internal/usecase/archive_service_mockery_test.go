package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Ndwalker8/NFL-100/internal/domain/rawdata"
	rawdatamock "github.com/Ndwalker8/NFL-100/internal/mocks/domain/rawdata"
)

func TestArchive_UpsertsSinglePayloadUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := rawdatamock.NewRepository(t)
	svc := NewArchiveService(repo, nil)

	repo.
		On("UpsertMany",
			mock.MatchedBy(func(v context.Context) bool { return v == ctx }),
			mock.MatchedBy(func(items []rawdata.Payload) bool {
				return len(items) == 1 &&
					items[0].Source == "nflverse" &&
					items[0].EntityType == "csv_snapshot" &&
					items[0].EntityKey == "player_stats_2024.csv.gz" &&
					len(items[0].PayloadHash) == 64
			}),
		).
		Return(nil).
		Once()

	svc.Archive(ctx, "nflverse", "csv_snapshot", "player_stats_2024.csv.gz", []byte("season,week\n2024,1\n"))
}

func TestArchive_EmptyBodyNeverTouchesRepoUsingMockery(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	svc := NewArchiveService(repo, nil)

	// No expectation registered: any call would fail the test.
	svc.Archive(context.Background(), "espn", "api_response", "/scoreboard", nil)
}
