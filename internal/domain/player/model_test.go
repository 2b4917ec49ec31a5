package player

import "testing"

func TestIdentityFor_ProviderIDWins(t *testing.T) {
	t.Parallel()

	id := IdentityFor(SportFootball, "00-0034857", "Josh Allen", "BUF")
	if id.Synthetic {
		t.Fatal("identity with a provider id must not be synthetic")
	}
	if id.Key != "nfl:00-0034857" {
		t.Fatalf("key=%q", id.Key)
	}
}

func TestIdentityFor_FallbackIsNameTeamAndMarkedSynthetic(t *testing.T) {
	t.Parallel()

	a := IdentityFor(SportBasketball, "", " Luka Doncic ", "dal")
	b := IdentityFor(SportBasketball, "", "luka doncic", "DAL")
	if !a.Synthetic || !b.Synthetic {
		t.Fatal("surrogate identities must be flagged synthetic")
	}
	if a.Key != b.Key {
		t.Fatalf("normalization mismatch: %q vs %q", a.Key, b.Key)
	}
}

func TestIdentityFor_DistinctIDsNeverCollapse(t *testing.T) {
	t.Parallel()

	a := IdentityFor(SportFootball, "00-001", "Mike Williams", "LAC")
	b := IdentityFor(SportFootball, "00-002", "Mike Williams", "LAC")
	if a.Key == b.Key {
		t.Fatal("two provider ids with the same name+team collapsed")
	}
}

func TestNormalizeFootballPosition(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"QB", "rb", " wr ", "te"} {
		if _, ok := NormalizeFootballPosition(raw); !ok {
			t.Fatalf("%q should be eligible", raw)
		}
	}
	for _, raw := range []string{"K", "DEF", "OL", "", "FB"} {
		if _, ok := NormalizeFootballPosition(raw); ok {
			t.Fatalf("%q should be ineligible", raw)
		}
	}
}

func TestNormalizeBasketballPosition(t *testing.T) {
	t.Parallel()

	cases := map[string]Position{
		"Point Guard":    PositionPG,
		"Shooting Guard": PositionSG,
		"Small Forward":  PositionSF,
		"Power Forward":  PositionPF,
		"Center":         PositionC,
		"Forward":        PositionF,
		"C":              PositionC,
		"pg":             PositionPG,
		"Wing":           PositionG,
		"":               PositionG,
	}
	for raw, want := range cases {
		if got := NormalizeBasketballPosition(raw); got != want {
			t.Fatalf("NormalizeBasketballPosition(%q)=%q, want %q", raw, got, want)
		}
	}
}
