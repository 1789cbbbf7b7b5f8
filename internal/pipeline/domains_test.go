package pipeline

import (
	"testing"

	"menumaker/internal"
	"menumaker/internal/util"
)

func TestDomainOf(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.PinchOfYum.com/tacos", "pinchofyum.com"},
		{"https://cooking.nytimes.com/recipes/1", "cooking.nytimes.com"},
		{"attachments/photo.png", ""},
	}
	for _, tc := range cases {
		if got := DomainOf(tc.url); got != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.url, got, tc.want)
		}
	}
}

func TestBuildWebsites(t *testing.T) {
	items := []internal.CatalogItem{
		{
			URL:         util.StringPtr("https://b.com/soup"),
			URLs:        []string{"https://b.com/soup"},
			MenuFiles:   []string{"Menus/a.md"},
			MenuWeeks:   []string{"2021-06-01"},
			MenuSeasons: []string{"summer"},
			MealTypes:   []string{"dinner"},
			ItemTexts:   []string{"Soup"},
		},
		{
			URL:  util.StringPtr("https://a.com/tacos"),
			URLs: []string{"https://a.com/tacos", "https://www.a.com/salad"},
		},
		{
			// same URL as the first entry, counts once
			URL:  util.StringPtr("https://b.com/soup"),
			URLs: []string{"https://b.com/soup"},
		},
	}

	websites := BuildWebsites(items)
	if len(websites) != 2 {
		t.Fatalf("websites=%v", websites)
	}
	// lexicographic domain order
	if websites[0].Domain != "a.com" || websites[1].Domain != "b.com" {
		t.Fatalf("order: %s %s", websites[0].Domain, websites[1].Domain)
	}
	if websites[0].Count != 2 {
		t.Fatalf("a.com count=%d", websites[0].Count)
	}
	if websites[1].Count != 1 {
		t.Fatalf("b.com count=%d", websites[1].Count)
	}

	soup := websites[1].Items[0]
	if soup.MenuFile != "Menus/a.md" || soup.ItemText != "Soup" || soup.MealType != "dinner" {
		t.Fatalf("provenance: %+v", soup)
	}
	if soup.MenuDate == nil || *soup.MenuDate != "2021-06-01" {
		t.Fatalf("date: %v", soup.MenuDate)
	}
}
