package pipeline

import (
	"strings"
	"time"

	"menumaker/internal"
)

// mealRules is an ordered rule table: the first rule whose keyword appears in
// the lower-cased section+text wins. The order is part of the contract:
// "breakfast burrito for lunch" resolves to breakfast because breakfast is
// checked first.
var mealRules = []struct {
	Meal     internal.MealType
	Keywords []string
}{
	{internal.MealBreakfast, []string{"breakfast", "brunch"}},
	{internal.MealLunch, []string{"lunch"}},
	{internal.MealSnack, []string{"snack"}},
	{internal.MealDessert, []string{"dessert"}},
	{internal.MealDrink, []string{"drink"}},
}

func ClassifyMeal(section, text string) internal.MealType {
	haystack := strings.ToLower(section + " " + text)
	for _, rule := range mealRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(haystack, kw) {
				return rule.Meal
			}
		}
	}
	return internal.MealDinner
}

func SeasonOfDate(t time.Time) internal.Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return internal.SeasonWinter
	case time.March, time.April, time.May:
		return internal.SeasonSpring
	case time.June, time.July, time.August:
		return internal.SeasonSummer
	default:
		return internal.SeasonFall
	}
}

// SeasonOf maps an ISO date to its season; a missing or malformed date is
// SeasonUnknown.
func SeasonOf(isoDate *string) internal.Season {
	if isoDate == nil {
		return internal.SeasonUnknown
	}
	t, err := time.Parse("2006-01-02", *isoDate)
	if err != nil {
		return internal.SeasonUnknown
	}
	return SeasonOfDate(t)
}
