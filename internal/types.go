package internal

type Season string

const (
	SeasonWinter  Season = "winter"
	SeasonSpring  Season = "spring"
	SeasonSummer  Season = "summer"
	SeasonFall    Season = "fall"
	SeasonUnknown Season = "unknown"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealDessert   MealType = "dessert"
	MealDrink     MealType = "drink"
)

type Link struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	AutoAdded bool   `json:"auto_added,omitempty"`
}

type MenuItem struct {
	Text       string   `json:"text"`
	Checked    bool     `json:"checked"`
	Section    *string  `json:"section"`
	MealType   MealType `json:"meal_type"`
	SourceHint *string  `json:"source_hint"`
	Links      []Link   `json:"links"`
	URLs       []string `json:"urls"`
}

// HasAnyLink reports whether the item carries a formatted link or a bare URL.
func (i MenuItem) HasAnyLink() bool {
	return len(i.Links) > 0 || len(i.URLs) > 0
}

type Menu struct {
	File       string     `json:"file"`
	Title      *string    `json:"title"`
	WeekOfDate *string    `json:"week_of_date"`
	Season     Season     `json:"season"`
	Items      []MenuItem `json:"items"`
}

type Recipe struct {
	File        string   `json:"file"`
	Title       *string  `json:"title"`
	Links       []Link   `json:"links"`
	URLs        []string `json:"urls"`
	Attachments []Link   `json:"attachments"`
	Text        string   `json:"text"`
}

// CatalogItem is one deduplicated catalog entry: a distinct dish with the
// provenance of every menu occurrence that contributed to it.
type CatalogItem struct {
	URL         *string  `json:"url"`
	URLs        []string `json:"urls"`
	LinkTexts   []string `json:"link_texts"`
	MenuFiles   []string `json:"menu_files"`
	MenuWeeks   []string `json:"menu_weeks"`
	MenuSeasons []string `json:"menu_seasons"`
	MealTypes   []string `json:"meal_types"`
	Sections    []string `json:"sections"`
	SourceHints []string `json:"source_hints"`
	ItemTexts   []string `json:"item_texts"`
	Count       int      `json:"count"`
}

type SourceItem struct {
	URL        string  `json:"url"`
	MenuFile   string  `json:"menu_file"`
	MenuDate   *string `json:"menu_date"`
	MenuSeason string  `json:"menu_season"`
	ItemText   string  `json:"item_text"`
	MealType   string  `json:"meal_type"`
}

type Website struct {
	Domain string       `json:"domain"`
	Count  int          `json:"count"`
	Items  []SourceItem `json:"items"`
}
