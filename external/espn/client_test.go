package espn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ndwalker8/NFL-100/internal/usecase"
)

func scoreboardJSON(eventIDs ...string) string {
	events := make([]string, 0, len(eventIDs))
	for _, id := range eventIDs {
		events = append(events, fmt.Sprintf(`{
			"id": %q,
			"competitions": [{"competitors": [
				{"team": {"id": "13", "abbreviation": "LAL"}},
				{"team": {"id": "2", "abbreviation": "BOS"}}
			]}]
		}`, id))
	}
	return `{"events": [` + strings.Join(events, ",") + `]}`
}

func summaryJSON(athleteID, name, pts string) string {
	return fmt.Sprintf(`{
		"boxscore": {
			"players": [{
				"team": {"abbreviation": "LAL"},
				"statistics": [{
					"name": "totals",
					"names": ["min", "pts", "reb", "ast"],
					"athletes": [{
						"athlete": {"id": %q, "displayName": %q},
						"stats": ["36", %q, "8", "9"]
					}]
				}]
			}]
		}
	}`, athleteID, name, pts)
}

func TestFetchSlate_FanOutAndDeterministicOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/scoreboard"):
			_, _ = w.Write([]byte(scoreboardJSON("402", "401")))
		case strings.HasSuffix(r.URL.Path, "/summary"):
			_, _ = w.Write([]byte(summaryJSON("23", "LeBron James", "28")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	slate, err := client.FetchSlate(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("FetchSlate: %v", err)
	}
	if len(slate.Players) != 2 {
		t.Fatalf("players=%d, want one per event", len(slate.Players))
	}
	if slate.Players[0].EventID != "401" || slate.Players[1].EventID != "402" {
		t.Fatalf("fan-in order not fixed: %s then %s", slate.Players[0].EventID, slate.Players[1].EventID)
	}
	if len(slate.Warnings) != 0 {
		t.Fatalf("warnings=%v", slate.Warnings)
	}
}

func TestFetchSlate_EmptyScheduleIsSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	slate, err := client.FetchSlate(context.Background(), "2026-07-04")
	if err != nil {
		t.Fatalf("empty slate must not error: %v", err)
	}
	if slate.Players == nil || len(slate.Players) != 0 {
		t.Fatalf("players=%v, want empty non-nil slice", slate.Players)
	}
}

func TestFetchSlate_PartialGameFailureBecomesWarning(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/scoreboard"):
			_, _ = w.Write([]byte(scoreboardJSON("401", "402")))
		case strings.HasSuffix(r.URL.Path, "/summary"):
			if r.URL.Query().Get("event") == "402" {
				http.Error(w, "gone", http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(summaryJSON("23", "LeBron James", "28")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	slate, err := client.FetchSlate(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("partial failure must not be fatal: %v", err)
	}
	if len(slate.Players) != 1 {
		t.Fatalf("players=%d, want the surviving game", len(slate.Players))
	}
	if len(slate.Warnings) != 1 || !strings.Contains(slate.Warnings[0], "402") {
		t.Fatalf("warnings=%v, want one naming event 402", slate.Warnings)
	}
}

func TestFetchSlate_ScoreboardDownIsSourceUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err := client.FetchSlate(context.Background(), "2026-01-15")
	if !errors.Is(err, usecase.ErrSourceUnavailable) {
		t.Fatalf("err=%v, want ErrSourceUnavailable", err)
	}

	var srcErr *usecase.SourceUnavailableError
	if !errors.As(err, &srcErr) || len(srcErr.Attempts) != 1 {
		t.Fatalf("attempts missing from %v", err)
	}
	if !strings.Contains(srcErr.Attempts[0].URL, "dates=20260115") {
		t.Fatalf("attempt url %q lacks the compact date", srcErr.Attempts[0].URL)
	}
}

func TestListRosters_SlateTeams(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/scoreboard"):
			_, _ = w.Write([]byte(scoreboardJSON("401")))
		case strings.Contains(r.URL.Path, "/teams/"):
			teamID := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			_, _ = w.Write([]byte(fmt.Sprintf(`{
				"team": {
					"abbreviation": "T%s",
					"athletes": [{
						"id": "9%s",
						"displayName": "Player %s",
						"jersey": "7",
						"position": {"abbreviation": "SG"}
					}]
				}
			}`, teamID, teamID, teamID)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	players, warnings, err := client.ListRosters(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("ListRosters: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("players=%d, want one per slate team", len(players))
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings=%v", warnings)
	}
}

func TestListRosters_EmptySlateFallsBackToLeagueTeams(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/scoreboard"):
			_, _ = w.Write([]byte(`{"events": []}`))
		case strings.HasSuffix(r.URL.Path, "/teams"):
			_, _ = w.Write([]byte(`{"sports":[{"leagues":[{"teams":[
				{"team": {"id": "5"}}
			]}]}]}`))
		case strings.Contains(r.URL.Path, "/teams/"):
			_, _ = w.Write([]byte(`{"team": {"abbreviation": "MIA", "athletes": [
				{"id": "100", "displayName": "Bam Adebayo", "position": {"abbreviation": "C"}}
			]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	players, warnings, err := client.ListRosters(context.Background(), "2026-07-04")
	if err != nil {
		t.Fatalf("ListRosters: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Bam Adebayo" {
		t.Fatalf("players=%v", players)
	}

	foundFallbackNote := false
	for _, w := range warnings {
		if strings.Contains(w, "league-wide") {
			foundFallbackNote = true
		}
	}
	if !foundFallbackNote {
		t.Fatalf("warnings=%v, want league fallback note", warnings)
	}
}
