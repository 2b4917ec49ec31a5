package nflverse

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
	"github.com/Ndwalker8/NFL-100/internal/platform/rawrow"
)

// Column synonyms, highest priority first. The snapshot schema renames
// columns between publications; ordered lookup keeps old and new assets
// readable with one table.
var (
	playerIDKeys = []string{"player_id", "gsis_id", "gsis_player_id", "gsisid"}
	nameKeys     = []string{"player_display_name", "player_name", "name"}
	teamKeys     = []string{"recent_team", "team", "recent_team_abbr"}
	positionKeys = []string{"position", "position_group"}

	passYdsKeys  = []string{"passing_yards", "pass_yds"}
	passTDKeys   = []string{"passing_tds", "pass_td"}
	intKeys      = []string{"interceptions", "passing_interceptions", "int"}
	rushYdsKeys  = []string{"rushing_yards", "rush_yds"}
	rushTDKeys   = []string{"rushing_tds", "rush_td"}
	recKeys      = []string{"receptions", "rec"}
	recYdsKeys   = []string{"receiving_yards", "rec_yds"}
	recTDKeys    = []string{"receiving_tds", "rec_td"}
	fumLostKeys  = []string{"fumbles_lost", "sack_fumbles_lost"}
	pointsStd    = []string{"fantasy_points"}
	pointsHalf   = []string{"fantasy_points_half_ppr"}
	pointsPPR    = []string{"fantasy_points_ppr"}
	seasonKeys   = []string{"season"}
	weekColumns  = []string{"week"}
)

// parseSeasonCSV decodes a header-addressed CSV snapshot into normalized
// player weeks. Rows outside the eligible position pool are dropped; rows
// that cannot be read at all become warnings, not errors.
func parseSeasonCSV(data []byte, season int) ([]stats.FootballPlayerWeek, []string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("header has %d columns, want a stat table", len(header))
	}
	columns := make([]string, len(header))
	copy(columns, header)

	rows := make([]stats.FootballPlayerWeek, 0, 4096)
	warnings := make([]string, 0, 4)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if len(warnings) < maxRowWarnings {
				warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			}
			continue
		}

		row := make(rawrow.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}

		pos, eligible := player.NormalizeFootballPosition(rawrow.String(row, positionKeys...))
		if !eligible {
			continue
		}

		week := stats.FootballPlayerWeek{
			PlayerID: rawrow.String(row, playerIDKeys...),
			Name:     rawrow.String(row, nameKeys...),
			Team:     rawrow.String(row, teamKeys...),
			Position: pos,
			Season:   season,
			Week:     rawrow.Int(row, weekColumns...),
			Line: stats.FootballLine{
				PassYds:       rawrow.Float(row, passYdsKeys...),
				PassTD:        rawrow.Float(row, passTDKeys...),
				Interceptions: rawrow.Float(row, intKeys...),
				RushYds:       rawrow.Float(row, rushYdsKeys...),
				RushTD:        rawrow.Float(row, rushTDKeys...),
				Receptions:    rawrow.Float(row, recKeys...),
				RecYds:        rawrow.Float(row, recYdsKeys...),
				RecTD:         rawrow.Float(row, recTDKeys...),
				FumblesLost:   rawrow.Float(row, fumLostKeys...),
			},
		}
		if s := rawrow.Int(row, seasonKeys...); s > 0 {
			week.Season = s
		}
		if v, ok := rawrow.FloatOK(row, pointsStd...); ok {
			week.Precomputed.Std = &v
		}
		if v, ok := rawrow.FloatOK(row, pointsHalf...); ok {
			week.Precomputed.Half = &v
		}
		if v, ok := rawrow.FloatOK(row, pointsPPR...); ok {
			week.Precomputed.PPR = &v
		}

		if week.Name == "" && week.PlayerID == "" {
			if len(warnings) < maxRowWarnings {
				warnings = append(warnings, fmt.Sprintf("line %d: row has neither player id nor name, skipped", line))
			}
			continue
		}

		rows = append(rows, week)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no eligible player rows in %d-column snapshot", len(columns))
	}

	return rows, warnings, nil
}

const maxRowWarnings = 4
