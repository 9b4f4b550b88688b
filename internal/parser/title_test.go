package parser

import "testing"

func TestParseTitle_BrandPattern(t *testing.T) {
	t.Parallel()

	title, ok := ParseTitle("Animal Flow Level 2 Geneva (ENG)")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if title.Location != "Geneva" || title.Level != 2 {
		t.Fatalf("unexpected title: %+v", title)
	}
	if title.String() != "Geneva L2" {
		t.Fatalf("unexpected display form: %s", title.String())
	}
}

func TestParseTitle_BrandPattern_Spanish(t *testing.T) {
	t.Parallel()

	title, ok := ParseTitle("Animal Flow Nivel 1 Ciudad de México (ESP)")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if title.Location != "Ciudad de México" || title.Level != 1 {
		t.Fatalf("unexpected title: %+v", title)
	}
}

func TestParseTitle_ShortPattern(t *testing.T) {
	t.Parallel()

	title, ok := ParseTitle("Virtual L1")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if title.Location != "Virtual" || title.Level != 1 {
		t.Fatalf("unexpected title: %+v", title)
	}

	title, ok = ParseTitle("Geneva L2")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if title.Location != "Geneva" || title.Level != 2 {
		t.Fatalf("unexpected title: %+v", title)
	}
}

func TestParseTitle_BrandPatternWins(t *testing.T) {
	t.Parallel()

	// 两种格式都可能命中时，品牌格式优先
	title, ok := ParseTitle("Animal Flow Level 3 New York City (ENG)")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if title.Location != "New York City" || title.Level != 3 {
		t.Fatalf("unexpected title: %+v", title)
	}
}

func TestParseTitle_Unparsable(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"Gift Card",
		"Animal Flow Mentorship Program",
		"Online Membership",
	}
	for _, raw := range cases {
		if _, ok := ParseTitle(raw); ok {
			t.Fatalf("expected parse failure for %q", raw)
		}
	}
}

func TestCanonicalizeTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Geneva L2":        "geneva l2",
		"  Geneva   L2  ":  "geneva l2",
		"Bogotá L1":        "bogota l1",
		"São Paulo L2":     "sao paulo l2",
		"Ciudad de México": "ciudad de mexico",
		"Geneva, L2!":      "geneva l2",
	}
	for in, want := range cases {
		if got := CanonicalizeTitle(in); got != want {
			t.Fatalf("canonicalize %q: want %q got %q", in, want, got)
		}
	}
}

func TestCanonicalizeTitle_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Geneva L2",
		"Animal Flow Level 2 Geneva (ENG)",
		"Bogotá L1",
		"Virtual L3",
	}
	for _, in := range inputs {
		once := CanonicalizeTitle(in)
		twice := CanonicalizeTitle(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestWorkshopTitle_CanonicalMatchesAcrossFormats(t *testing.T) {
	t.Parallel()

	title, ok := ParseTitle("Animal Flow Level 2 Geneva (ENG)")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if got := title.Canonical(); got != "geneva l2" {
		t.Fatalf("want geneva l2, got %q", got)
	}

	roster, ok := ParseTitle("Geneva L2")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if title.Canonical() != roster.Canonical() {
		t.Fatalf("canonical keys differ: %q vs %q", title.Canonical(), roster.Canonical())
	}
}
