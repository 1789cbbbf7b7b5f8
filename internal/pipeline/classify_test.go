package pipeline

import (
	"testing"

	"menumaker/internal/util"
)

func TestSeasonBoundaries(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2021-02-28", "winter"},
		{"2021-03-01", "spring"},
		{"2021-06-01", "summer"},
		{"2021-09-01", "fall"},
		{"2021-12-01", "winter"},
	}
	for _, tc := range cases {
		if got := SeasonOf(util.StringPtr(tc.date)); string(got) != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.date, got, tc.want)
		}
	}
	if got := SeasonOf(nil); got != "unknown" {
		t.Fatalf("nil date: got=%s", got)
	}
}

func TestMealKeywordPriority(t *testing.T) {
	cases := []struct {
		section string
		text    string
		want    string
	}{
		{"Breakfasts", "Oatmeal", "breakfast"},
		{"Lunches", "Breakfast burrito", "breakfast"}, // breakfast outranks lunch
		{"Lunches", "Turkey sandwich", "lunch"},
		{"Snacks", "Trail mix", "snack"},
		{"", "Chocolate dessert cups", "dessert"},
		{"Drinks", "Iced tea", "drink"},
		{"Dinner", "Tacos", "dinner"},
		{"", "Tacos", "dinner"}, // no keyword defaults to dinner
	}
	for _, tc := range cases {
		if got := ClassifyMeal(tc.section, tc.text); string(got) != tc.want {
			t.Fatalf("(%q,%q): got=%s want=%s", tc.section, tc.text, got, tc.want)
		}
	}
}
