package rawrow

import "testing"

func TestLookup_RespectsPriorityOrder(t *testing.T) {
	t.Parallel()

	row := Row{
		"gsis_id":   "00-0034857",
		"player_id": "00-0031234",
	}

	v, ok := Lookup(row, "player_id", "gsis_id", "gsis_player_id")
	if !ok {
		t.Fatal("expected a hit")
	}
	if v != "00-0031234" {
		t.Fatalf("got %v, want the higher-priority player_id value", v)
	}
}

func TestLookup_SkipsEmptyAndNilCandidates(t *testing.T) {
	t.Parallel()

	row := Row{
		"player_id": "   ",
		"gsis_id":   nil,
		"gsisid":    "00-0099999",
	}

	v, ok := Lookup(row, "player_id", "gsis_id", "gsisid")
	if !ok || v != "00-0099999" {
		t.Fatalf("got (%v, %v), want fallthrough to gsisid", v, ok)
	}
}

func TestLookup_AbsentIsSecondReturnNotZeroValue(t *testing.T) {
	t.Parallel()

	if _, ok := Lookup(Row{"other": 1}, "points", "pts"); ok {
		t.Fatal("absent field reported as present")
	}
	if _, ok := Lookup(nil, "points"); ok {
		t.Fatal("nil row reported a hit")
	}
}

func TestFloat_CoercionTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		row  Row
		keys []string
		want float64
	}{
		{"string number", Row{"yds": "287"}, []string{"yds"}, 287},
		{"json float", Row{"reb": 7.0}, []string{"reb"}, 7},
		{"garbage string", Row{"reb": "DNP"}, []string{"reb"}, 0},
		{"absent", Row{}, []string{"reb"}, 0},
		{"negative", Row{"to": "-3"}, []string{"to"}, -3},
		{"synonym fallback", Row{"totreb": "11"}, []string{"rebounds", "totreb", "reb"}, 11},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Float(tc.row, tc.keys...); got != tc.want {
				t.Fatalf("Float=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestFloatOK_DistinguishesAbsentFromZero(t *testing.T) {
	t.Parallel()

	if v, ok := FloatOK(Row{"fantasy_points": "0"}, "fantasy_points"); !ok || v != 0 {
		t.Fatalf("explicit zero: got (%v, %v), want (0, true)", v, ok)
	}
	if _, ok := FloatOK(Row{}, "fantasy_points"); ok {
		t.Fatal("absent column must not report ok")
	}
}

func TestString_FormatsScalars(t *testing.T) {
	t.Parallel()

	if got := String(Row{"team": " KC "}, "recent_team", "team"); got != "KC" {
		t.Fatalf("got %q, want trimmed KC", got)
	}
	if got := String(Row{"week": 7.0}, "week"); got != "7" {
		t.Fatalf("got %q, want 7", got)
	}
	if got := String(Row{}, "team"); got != "" {
		t.Fatalf("got %q, want empty for absent", got)
	}
}
