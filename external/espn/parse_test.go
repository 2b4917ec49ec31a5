package espn

import (
	"testing"

	"github.com/Ndwalker8/NFL-100/internal/platform/rawrow"
)

func athleteEntry(id, name string, statValues ...any) map[string]any {
	return map[string]any{
		"athlete": map[string]any{"id": id, "displayName": name},
		"stats":   statValues,
	}
}

func TestParseBoxScore_TotalsSectionWins(t *testing.T) {
	t.Parallel()

	root := rawrow.Row{
		"boxscore": map[string]any{
			"players": []any{
				map[string]any{
					"team": map[string]any{"abbreviation": "DAL"},
					"statistics": []any{
						// First-half split arrives before the totals block.
						map[string]any{
							"name":     "firstHalf",
							"names":    []any{"pts", "reb", "ast"},
							"athletes": []any{athleteEntry("77", "Luka Doncic", "18", "4", "5")},
						},
						map[string]any{
							"name":     "totals",
							"names":    []any{"pts", "reb", "ast", "3pt"},
							"athletes": []any{athleteEntry("77", "Luka Doncic", "35", "11", "9", "4-9")},
						},
					},
				},
			},
		},
	}

	games, warnings := parseBoxScore(root, "401")
	if len(games) != 1 {
		t.Fatalf("games=%d", len(games))
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings=%v, totals-backed block needs no fallback", warnings)
	}
	g := games[0]
	if g.Line.Points != 35 || g.Line.Rebounds != 11 || g.Line.Assists != 9 {
		t.Fatalf("totals not preferred: %+v", g.Line)
	}
	if g.Line.ThreesMade != 4 {
		t.Fatalf("made-attempted pair not unwrapped: %v", g.Line.ThreesMade)
	}
	if g.Team != "DAL" || g.EventID != "401" || g.PlayerID != "77" {
		t.Fatalf("identity fields: %+v", g)
	}
}

func TestParseBoxScore_TeamsNestingFallback(t *testing.T) {
	t.Parallel()

	root := rawrow.Row{
		"boxscore": map[string]any{
			"teams": []any{
				map[string]any{
					"team": map[string]any{"abbreviation": "BOS"},
					"statistics": []any{
						map[string]any{
							"keys":     []any{"points", "totreb", "assists", "steals", "blocks", "turnovers"},
							"athletes": []any{athleteEntry("4", "Jayson Tatum", "30", "8", "4", "2", "1", "3")},
						},
					},
				},
			},
		},
	}

	games, _ := parseBoxScore(root, "402")
	if len(games) != 1 {
		t.Fatalf("games=%d, want athletes found under boxscore.teams", len(games))
	}
	line := games[0].Line
	// 30 + 8*1.2 + 4*1.5 + 2*3 + 1*3 - 3 = 51.6 worth of inputs.
	if line.Points != 30 || line.Rebounds != 8 || line.Turnovers != 3 {
		t.Fatalf("line: %+v", line)
	}
}

func TestParseBoxScore_MissingSectionsYieldEmpty(t *testing.T) {
	t.Parallel()

	if games, _ := parseBoxScore(rawrow.Row{}, "403"); len(games) != 0 {
		t.Fatalf("games=%d, want 0 for empty summary", len(games))
	}
}

func TestParseBoxScore_NoTotalsSumsSplitsAndWarns(t *testing.T) {
	t.Parallel()

	root := rawrow.Row{
		"boxscore": map[string]any{
			"players": []any{
				map[string]any{
					"team": map[string]any{"abbreviation": "DAL"},
					"statistics": []any{
						map[string]any{
							"name":     "firstHalf",
							"names":    []any{"pts", "reb", "ast", "3pt"},
							"athletes": []any{athleteEntry("77", "Luka Doncic", "18", "4", "5", "2-5")},
						},
						map[string]any{
							"name":     "secondHalf",
							"names":    []any{"pts", "reb", "ast", "3pt"},
							"athletes": []any{athleteEntry("77", "Luka Doncic", "17", "7", "4", "2-4")},
						},
					},
				},
			},
		},
	}

	games, warnings := parseBoxScore(root, "404")
	if len(games) != 1 {
		t.Fatalf("games=%d", len(games))
	}
	line := games[0].Line
	if line.Points != 35 || line.Rebounds != 11 || line.Assists != 9 || line.ThreesMade != 4 {
		t.Fatalf("splits not summed: %+v", line)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings=%v, want the summed-splits fallback flagged", warnings)
	}
}

func TestParseScoreboard(t *testing.T) {
	t.Parallel()

	root := rawrow.Row{
		"events": []any{
			map[string]any{
				"id": "401585183",
				"competitions": []any{map[string]any{
					"competitors": []any{
						map[string]any{"team": map[string]any{"id": "13"}},
						map[string]any{"team": map[string]any{"id": "2"}},
					},
				}},
			},
			map[string]any{
				"id": "401585184",
				"competitions": []any{map[string]any{
					"competitors": []any{
						map[string]any{"team": map[string]any{"id": "13"}},
					},
				}},
			},
		},
	}

	if got := parseScoreboardEventIDs(root); len(got) != 2 || got[0] != "401585183" {
		t.Fatalf("event ids: %v", got)
	}
	if got := parseScoreboardTeamIDs(root); len(got) != 2 {
		t.Fatalf("team ids not deduplicated: %v", got)
	}
}

func TestParseTeamRoster_AllShapes(t *testing.T) {
	t.Parallel()

	athlete := map[string]any{
		"id":          "3945274",
		"displayName": "Luka Doncic",
		"jersey":      "77",
		"position":    map[string]any{"abbreviation": "PG"},
		"headshot":    map[string]any{"href": "https://img.example/77.png"},
	}

	shapes := []rawrow.Row{
		{"team": map[string]any{"abbreviation": "DAL", "athletes": []any{athlete}}},
		{"team": map[string]any{
			"abbreviation": "DAL",
			"roster":       map[string]any{"entries": []any{map[string]any{"athlete": athlete}}},
		}},
		{
			"team":     map[string]any{"abbreviation": "DAL"},
			"athletes": []any{map[string]any{"player": athlete}},
		},
	}

	for i, root := range shapes {
		players := parseTeamRoster(root)
		if len(players) != 1 {
			t.Fatalf("shape %d: players=%d", i, len(players))
		}
		p := players[0]
		if p.ID != "3945274" || p.Name != "Luka Doncic" || p.Team != "DAL" {
			t.Fatalf("shape %d: %+v", i, p)
		}
		if string(p.Position) != "PG" {
			t.Fatalf("shape %d: position=%s", i, p.Position)
		}
		if p.Headshot != "https://img.example/77.png" {
			t.Fatalf("shape %d: headshot=%s", i, p.Headshot)
		}
	}
}

func TestParseLeagueTeamIDs(t *testing.T) {
	t.Parallel()

	root := rawrow.Row{
		"sports": []any{map[string]any{
			"leagues": []any{map[string]any{
				"teams": []any{
					map[string]any{"team": map[string]any{"id": "1"}},
					map[string]any{"team": map[string]any{"id": "2"}},
				},
			}},
		}},
	}

	if got := parseLeagueTeamIDs(root); len(got) != 2 {
		t.Fatalf("league team ids: %v", got)
	}
}
