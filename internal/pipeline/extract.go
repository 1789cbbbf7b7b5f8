package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"menumaker/internal"
	"menumaker/internal/util"
)

var (
	headingRe       = regexp.MustCompile(`^\s*#{1,6}\s*(.+?)\s*$`)
	topHeadingRe    = regexp.MustCompile(`^\s*#\s+(.+?)\s*$`)
	sectionRe       = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z\s'&]+?)(?:\s*\(\d+\))?\s*$`)
	weekOfRe        = regexp.MustCompile(`(?i)(?:Menu\s+week\s+of|Week\s+of)\s+(\d{1,2})-(\d{1,2})-(\d{2,4})`)
	attachmentURLRe = regexp.MustCompile(`^(\.\./)?attachments/`)
)

var sectionNames = map[string]struct{}{
	"breakfast": {}, "breakfasts": {},
	"lunch": {}, "lunches": {},
	"dinner": {}, "dinners": {},
	"snack": {}, "snacks": {},
	"drink": {}, "drinks": {},
	"dessert": {}, "desserts": {},
}

// ChecklistTokenizer recognizes the lines of one checklist dialect. Swapping
// the tokenizer is enough to support another document format; everything
// downstream only sees the recognized tokens.
type ChecklistTokenizer interface {
	Heading(line string) (text string, ok bool)
	Section(line string) (name string, ok bool)
	Checkbox(line string) (text string, checked bool, ok bool)
}

// MarkdownTokenizer recognizes the hand-authored markdown dialect: `#` style
// headings, a fixed vocabulary of section names with an optional trailing
// count, and `- [ ]` / `- [x]` checkbox lines.
type MarkdownTokenizer struct{}

func (MarkdownTokenizer) Heading(line string) (string, bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func (MarkdownTokenizer) Section(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	m := sectionRe.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if _, ok := sectionNames[strings.ToLower(name)]; !ok {
		return "", false
	}
	return name, true
}

func (MarkdownTokenizer) Checkbox(line string) (string, bool, bool) {
	m := checkboxPrefixRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", false, false
	}
	mark := line[m[4]:m[5]]
	text := strings.TrimSpace(line[m[1]:])
	if text == "" {
		return "", false, false
	}
	return text, strings.EqualFold(mark, "x"), true
}

type Parser struct {
	tok ChecklistTokenizer
}

func NewParser() *Parser {
	return &Parser{tok: MarkdownTokenizer{}}
}

// ParseWeekDate reads the week date out of a filename like
// "Menu week of 6-1-21.md". Two-digit years mean 2000+yy. A filename that
// does not match, or that encodes an impossible calendar date, yields nil.
func ParseWeekDate(filename string) *string {
	m := weekOfRe.FindStringSubmatch(filename)
	if m == nil {
		return nil
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}
	return util.StringPtr(t.Format("2006-01-02"))
}

// ParseMenu turns one normalized menu document into a typed record. The file
// argument is the provenance label stored on the record (e.g. "Menus/x.md").
func (p *Parser) ParseMenu(file, text string) internal.Menu {
	menu := internal.Menu{File: file, Items: []internal.MenuItem{}}
	menu.WeekOfDate = ParseWeekDate(path.Base(file))
	menu.Season = SeasonOf(menu.WeekOfDate)

	var currentSection *string
	for _, line := range splitDocumentLines(text) {
		if menu.Title == nil {
			if heading, ok := p.tok.Heading(line); ok {
				menu.Title = util.StringPtr(heading)
			}
		}

		if raw, checked, ok := p.tok.Checkbox(line); ok {
			extracted := ExtractLinks(raw)
			item := internal.MenuItem{
				Text:       extracted.DisplayText,
				Checked:    checked,
				Section:    currentSection,
				SourceHint: ExtractSourceHint(raw),
				Links:      extracted.Links,
				URLs:       extracted.BareURLs,
			}
			item.MealType = ClassifyMeal(util.Deref(currentSection), extracted.DisplayText)
			menu.Items = append(menu.Items, item)
			continue
		}

		if name, ok := p.tok.Section(line); ok {
			currentSection = util.StringPtr(name)
		}
	}

	return menu
}

// ParseRecipe indexes one recipe note: first heading as title, every link and
// bare URL in the body, and attachment links kept separately.
func (p *Parser) ParseRecipe(file, text string) internal.Recipe {
	recipe := internal.Recipe{
		File:        file,
		Links:       []internal.Link{},
		URLs:        []string{},
		Attachments: []internal.Link{},
		Text:        text,
	}

	for _, line := range splitDocumentLines(text) {
		if heading, ok := p.tok.Heading(line); ok {
			recipe.Title = util.StringPtr(heading)
			break
		}
	}

	for _, m := range mdLinkRe.FindAllStringSubmatch(text, -1) {
		link := internal.Link{Text: m[1], URL: m[2]}
		recipe.Links = append(recipe.Links, link)
		if attachmentURLRe.MatchString(m[2]) {
			recipe.Attachments = append(recipe.Attachments, link)
		}
	}
	extracted := ExtractLinks(text)
	recipe.URLs = extracted.BareURLs

	return recipe
}

// LoadMenus parses every menu document under dir. A document that cannot be
// read is logged and skipped; it never discards its siblings.
func (p *Parser) LoadMenus(dir string) ([]internal.Menu, error) {
	names, err := listMarkdownFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	label := filepath.Base(dir)
	menus := make([]internal.Menu, 0, len(names))
	for _, name := range names {
		blob, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("skipping unreadable menu", "file", name, "err", err)
			continue
		}
		menu := p.ParseMenu(path.Join(label, name), string(blob))
		if menu.WeekOfDate == nil {
			slog.Warn("menu has no parseable week date", "file", name)
		}
		if menu.Title == nil {
			slog.Warn("menu has no title heading", "file", name)
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

// LoadRecipes parses every recipe note under dir. A missing recipes directory
// is not an error; menus exist without them.
func (p *Parser) LoadRecipes(dir string) ([]internal.Recipe, error) {
	names, err := listMarkdownFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []internal.Recipe{}, nil
		}
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	label := filepath.Base(dir)
	recipes := make([]internal.Recipe, 0, len(names))
	for _, name := range names {
		blob, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("skipping unreadable recipe", "file", name, "err", err)
			continue
		}
		recipes = append(recipes, p.ParseRecipe(path.Join(label, name), string(blob)))
	}
	return recipes, nil
}
