package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"menumaker/internal"
)

func TestNormalizeItemText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cous Cous salad!", "couscous salad"},
		{"Bar-B-Que chicken", "bbq chicken"},
		{"Barbecue ribs", "bbq ribs"},
		{"  Greek   Salad  ", "greek salad"},
	}
	for _, tc := range cases {
		if got := NormalizeItemText(tc.in); got != tc.want {
			t.Fatalf("%q: got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestApplyCorrections(t *testing.T) {
	menus := []internal.Menu{
		{
			File: "Menus/a.md",
			Items: []internal.MenuItem{
				{Text: "Couscous salad with feta"},
				{Text: "Tacos", Links: []internal.Link{{Text: "recipe", URL: "https://x.com/tacos"}}},
				{Text: "Unmatched item"},
			},
		},
	}
	rules := []CorrectionRule{
		{Match: "cous cous salad", URL: "https://a.com/couscous", Title: "Couscous Salad"},
		{Match: "tacos", URL: "https://wrong.com/tacos", Title: "never applied"},
	}

	added := ApplyCorrections(menus, rules)
	if added != 1 {
		t.Fatalf("added=%d", added)
	}

	got := menus[0].Items[0].Links
	if len(got) != 1 || got[0].URL != "https://a.com/couscous" || !got[0].AutoAdded {
		t.Fatalf("links=%v", got)
	}
	// already-linked item untouched
	if menus[0].Items[1].Links[0].URL != "https://x.com/tacos" {
		t.Fatalf("linked item overwritten: %v", menus[0].Items[1].Links)
	}
	if len(menus[0].Items[2].Links) != 0 {
		t.Fatalf("unmatched item gained a link: %v", menus[0].Items[2].Links)
	}
}

func TestRemoveAutoLinks(t *testing.T) {
	menus := []internal.Menu{
		{
			File: "Menus/a.md",
			Items: []internal.MenuItem{
				{Text: "A", Links: []internal.Link{
					{Text: "auto", URL: "https://a.com/1", AutoAdded: true},
					{Text: "hand", URL: "https://a.com/1"},
				}},
			},
		},
	}

	removed := RemoveAutoLinks(menus, []string{"https://a.com/1"})
	if removed != 1 {
		t.Fatalf("removed=%d", removed)
	}
	left := menus[0].Items[0].Links
	if len(left) != 1 || left[0].AutoAdded {
		t.Fatalf("hand-authored link pruned: %v", left)
	}
}

func TestLoadRemovalListBothShapes(t *testing.T) {
	dir := t.TempDir()

	bare := filepath.Join(dir, "bare.json")
	if err := os.WriteFile(bare, []byte(`["https://a.com/1","https://a.com/2"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	urls, err := LoadRemovalList(bare)
	if err != nil || len(urls) != 2 || urls[0] != "https://a.com/1" {
		t.Fatalf("bare: urls=%v err=%v", urls, err)
	}

	wrapped := filepath.Join(dir, "wrapped.json")
	if err := os.WriteFile(wrapped, []byte(`{"urls":["https://a.com/1"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	urls, err = LoadRemovalList(wrapped)
	if err != nil || len(urls) != 1 || urls[0] != "https://a.com/1" {
		t.Fatalf("wrapped: urls=%v err=%v", urls, err)
	}
}

func TestLoadCorrectionsBothShapes(t *testing.T) {
	dir := t.TempDir()

	bare := filepath.Join(dir, "bare.json")
	if err := os.WriteFile(bare, []byte(`[{"match":"tacos","url":"https://a.com/t","title":"Tacos"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	rules, err := LoadCorrections(bare)
	if err != nil || len(rules) != 1 || rules[0].Match != "tacos" {
		t.Fatalf("bare: rules=%v err=%v", rules, err)
	}

	wrapped := filepath.Join(dir, "wrapped.json")
	if err := os.WriteFile(wrapped, []byte(`{"rules":[{"match":"soup","url":"https://a.com/s","title":"Soup"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	rules, err = LoadCorrections(wrapped)
	if err != nil || len(rules) != 1 || rules[0].Match != "soup" {
		t.Fatalf("wrapped: rules=%v err=%v", rules, err)
	}
}
