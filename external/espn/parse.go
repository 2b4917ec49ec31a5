package espn

import (
	"fmt"
	"strings"

	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
	"github.com/Ndwalker8/NFL-100/internal/platform/rawrow"
)

// Box-score stat name synonyms, lowercased, highest priority first.
var (
	pointsKeys   = []string{"points", "pts"}
	reboundsKeys = []string{"totreb", "rebounds", "reb"}
	assistsKeys  = []string{"assists", "ast"}
	stealsKeys   = []string{"steals", "stl"}
	blocksKeys   = []string{"blocks", "blk"}
	turnoverKeys = []string{"turnovers", "to", "tov"}
	threesKeys   = []string{"threepointersmade", "3ptm", "fg3m", "3pt"}
	minutesKeys  = []string{"minutes", "min"}
)

func asMap(v any) rawrow.Row {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func parseScoreboardEventIDs(root rawrow.Row) []string {
	ids := make([]string, 0, 16)
	for _, ev := range asSlice(root["events"]) {
		event := asMap(ev)
		if id := rawrow.String(event, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseScoreboardTeamIDs(root rawrow.Row) []string {
	seen := make(map[string]struct{}, 32)
	ids := make([]string, 0, 32)
	for _, ev := range asSlice(root["events"]) {
		for _, comp := range asSlice(asMap(ev)["competitions"]) {
			for _, competitor := range asSlice(asMap(comp)["competitors"]) {
				team := asMap(asMap(competitor)["team"])
				id := rawrow.String(team, "id")
				if id == "" {
					continue
				}
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func parseLeagueTeamIDs(root rawrow.Row) []string {
	ids := make([]string, 0, 32)
	for _, sport := range asSlice(root["sports"]) {
		for _, league := range asSlice(asMap(sport)["leagues"]) {
			for _, entry := range asSlice(asMap(league)["teams"]) {
				team := asMap(asMap(entry)["team"])
				if id := rawrow.String(team, "id"); id != "" {
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

// parseBoxScore extracts per-athlete stat lines from a game summary. Team
// blocks normally live under boxscore.players; older payloads nest them
// under boxscore.teams instead. When a block carries no totals-tagged
// section the per-period splits are summed instead, and a warning is
// returned because summed splits can double-count on malformed payloads.
func parseBoxScore(root rawrow.Row, eventID string) ([]stats.BasketballPlayerGame, []string) {
	boxscore := asMap(root["boxscore"])
	teamBlocks := asSlice(boxscore["players"])
	if len(teamBlocks) == 0 {
		teamBlocks = asSlice(boxscore["teams"])
	}

	out := make([]stats.BasketballPlayerGame, 0, 32)
	warnings := make([]string, 0, 2)
	for _, tb := range teamBlocks {
		block := asMap(tb)
		teamAbbr := rawrow.String(asMap(block["team"]), "abbreviation", "shortDisplayName", "displayName")

		rows := make(map[string]rawrow.Row)
		meta := make(map[string]rawrow.Row)
		order := make([]string, 0, 16)

		sections := asSlice(block["statistics"])
		hasTotals := false
		for _, sec := range sections {
			if isTotalsSection(asMap(sec)) {
				hasTotals = true
				break
			}
		}

		if hasTotals {
			// Totals sections are applied first so a stat already set by
			// the totals block is never overwritten by a partial split.
			for _, pass := range []bool{true, false} {
				for _, sec := range sections {
					section := asMap(sec)
					if isTotalsSection(section) != pass {
						continue
					}
					applySection(section, rows, meta, &order)
				}
			}
		} else {
			for _, sec := range sections {
				sumSection(asMap(sec), rows, meta, &order)
			}
			if len(sections) > 1 {
				warnings = append(warnings, fmt.Sprintf("event %s: team %s box score has no totals section, summed %d partial sections", eventID, teamAbbr, len(sections)))
			}
		}

		for _, athleteID := range order {
			row := rows[athleteID]
			info := meta[athleteID]
			out = append(out, stats.BasketballPlayerGame{
				PlayerID: athleteID,
				Name:     rawrow.String(info, "displayName", "fullName", "shortName"),
				Team:     teamAbbr,
				EventID:  eventID,
				Line: stats.BasketballLine{
					Points:     rawrow.Float(row, pointsKeys...),
					Rebounds:   rawrow.Float(row, reboundsKeys...),
					Assists:    rawrow.Float(row, assistsKeys...),
					Steals:     rawrow.Float(row, stealsKeys...),
					Blocks:     rawrow.Float(row, blocksKeys...),
					Turnovers:  rawrow.Float(row, turnoverKeys...),
					ThreesMade: rawrow.Float(row, threesKeys...),
					Minutes:    rawrow.Float(row, minutesKeys...),
				},
			})
		}
	}
	return out, warnings
}

func isTotalsSection(section rawrow.Row) bool {
	for _, key := range []string{"name", "type", "displayName", "label"} {
		if strings.Contains(strings.ToLower(rawrow.String(section, key)), "total") {
			return true
		}
	}
	return false
}

// applySection merges one statistics section into the per-athlete rows.
// Existing keys win, so earlier (totals) passes take precedence.
func applySection(section rawrow.Row, rows, meta map[string]rawrow.Row, order *[]string) {
	names := statNames(section)
	for _, ath := range asSlice(section["athletes"]) {
		entry := asMap(ath)
		athlete := asMap(entry["athlete"])
		athleteID := rawrow.String(athlete, "id")
		if athleteID == "" {
			continue
		}

		row, known := rows[athleteID]
		if !known {
			row = make(rawrow.Row, len(names))
			rows[athleteID] = row
			meta[athleteID] = athlete
			*order = append(*order, athleteID)
		}

		values := asSlice(entry["stats"])
		for i, name := range names {
			if i >= len(values) {
				break
			}
			if _, exists := row[name]; exists {
				continue
			}
			row[name] = normalizeStatValue(values[i])
		}
	}
}

// sumSection accumulates one partial section into the per-athlete rows,
// adding numerically per stat name. Only used when a team block has no
// totals section, so the splits are the sole source of the full line.
func sumSection(section rawrow.Row, rows, meta map[string]rawrow.Row, order *[]string) {
	names := statNames(section)
	for _, ath := range asSlice(section["athletes"]) {
		entry := asMap(ath)
		athlete := asMap(entry["athlete"])
		athleteID := rawrow.String(athlete, "id")
		if athleteID == "" {
			continue
		}

		row, known := rows[athleteID]
		if !known {
			row = make(rawrow.Row, len(names))
			rows[athleteID] = row
			meta[athleteID] = athlete
			*order = append(*order, athleteID)
		}

		values := asSlice(entry["stats"])
		for i, name := range names {
			if i >= len(values) {
				break
			}
			v := rawrow.FloatValue(normalizeStatValue(values[i]))
			if existing, seen := row[name]; seen {
				v += rawrow.FloatValue(existing)
			}
			row[name] = v
		}
	}
}

// statNames returns the section's lowercased stat name list; payload
// versions disagree on whether it is called names, keys or labels.
func statNames(section rawrow.Row) []string {
	for _, key := range []string{"names", "keys", "labels"} {
		raw := asSlice(section[key])
		if len(raw) == 0 {
			continue
		}
		names := make([]string, 0, len(raw))
		for _, n := range raw {
			s, _ := n.(string)
			names = append(names, strings.ToLower(strings.TrimSpace(s)))
		}
		return names
	}
	return nil
}

// normalizeStatValue unwraps made-attempted pairs ("7-13") to the made
// count; other values pass through for rawrow coercion.
func normalizeStatValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "-"); idx > 0 && isAllDigits(s[:idx]) && isAllDigits(s[idx+1:]) {
		return s[:idx]
	}
	return s
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseTeamRoster extracts players from a team detail payload. Roster
// entries have moved between three shapes over provider versions.
func parseTeamRoster(root rawrow.Row) []player.Player {
	team := asMap(root["team"])
	teamAbbr := rawrow.String(team, "abbreviation", "shortDisplayName", "displayName")

	entries := asSlice(team["athletes"])
	if len(entries) == 0 {
		entries = asSlice(asMap(team["roster"])["entries"])
	}
	if len(entries) == 0 {
		entries = asSlice(root["athletes"])
	}

	out := make([]player.Player, 0, len(entries))
	for _, e := range entries {
		entry := asMap(e)
		athlete := entry
		if nested := asMap(entry["athlete"]); len(nested) > 0 {
			athlete = nested
		} else if nested := asMap(entry["player"]); len(nested) > 0 {
			athlete = nested
		}

		name := rawrow.String(athlete, "displayName", "fullName", "shortName")
		id := rawrow.String(athlete, "id")
		if name == "" && id == "" {
			continue
		}

		position := asMap(athlete["position"])
		headshot := rawrow.String(athlete, "headshot")
		if hs := asMap(athlete["headshot"]); len(hs) > 0 {
			headshot = rawrow.String(hs, "href")
		}

		out = append(out, player.Player{
			ID:       id,
			Sport:    player.SportBasketball,
			Name:     name,
			Team:     teamAbbr,
			Position: player.NormalizeBasketballPosition(rawrow.String(position, "abbreviation", "name", "displayName")),
			Headshot: headshot,
			Jersey:   rawrow.String(athlete, "jersey"),
		})
	}
	return out
}
