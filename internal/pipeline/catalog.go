package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"menumaker/internal"
	"menumaker/internal/util"
)

// orderedSet keeps first-seen insertion order and ignores empties, so the
// provenance lists in the catalog are deterministic across reruns.
type orderedSet struct {
	seen map[string]struct{}
	vals []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.vals = append(s.vals, v)
}

func (s *orderedSet) addAll(vals []string) {
	for _, v := range vals {
		s.add(v)
	}
}

func (s *orderedSet) values() []string {
	if s.vals == nil {
		return []string{}
	}
	return s.vals
}

type catalogGroup struct {
	url   *string
	urls  *orderedSet
	links *orderedSet
	files *orderedSet
	weeks *orderedSet
	seas  *orderedSet
	meals *orderedSet
	secs  *orderedSet
	hints *orderedSet
	texts *orderedSet
	count int
}

func newCatalogGroup(url *string) *catalogGroup {
	return &catalogGroup{
		url:   url,
		urls:  newOrderedSet(),
		links: newOrderedSet(),
		files: newOrderedSet(),
		weeks: newOrderedSet(),
		seas:  newOrderedSet(),
		meals: newOrderedSet(),
		secs:  newOrderedSet(),
		hints: newOrderedSet(),
		texts: newOrderedSet(),
	}
}

func (g *catalogGroup) addOccurrence(menu internal.Menu, item internal.MenuItem) {
	g.files.add(menu.File)
	if menu.WeekOfDate != nil {
		g.weeks.add(*menu.WeekOfDate)
	}
	g.seas.add(string(menu.Season))
	g.meals.add(string(item.MealType))
	if item.Section != nil {
		g.secs.add(*item.Section)
	}
	if item.SourceHint != nil {
		g.hints.add(*item.SourceHint)
	}
	g.texts.add(item.Text)
	g.count++
}

func (g *catalogGroup) toItem() internal.CatalogItem {
	return internal.CatalogItem{
		URL:         g.url,
		URLs:        g.urls.values(),
		LinkTexts:   g.links.values(),
		MenuFiles:   g.files.values(),
		MenuWeeks:   g.weeks.values(),
		MenuSeasons: g.seas.values(),
		MealTypes:   g.meals.values(),
		Sections:    g.secs.values(),
		SourceHints: g.hints.values(),
		ItemTexts:   g.texts.values(),
		Count:       g.count,
	}
}

// GroupByURL is the first consolidation pass. Every item contributes once per
// distinct resolved URL; an item without any URL lands in a synthetic group
// keyed by its (document, index) position so URL-less items never collide.
// Count is the number of contributing occurrences, so the sum of counts over
// all groups equals the number of (item, URL) pairs plus the number of
// URL-less items.
func GroupByURL(menus []internal.Menu) []internal.CatalogItem {
	groups := map[string]*catalogGroup{}
	order := make([]string, 0)

	group := func(key string, url *string) *catalogGroup {
		g, ok := groups[key]
		if !ok {
			g = newCatalogGroup(url)
			groups[key] = g
			order = append(order, key)
		}
		return g
	}

	for _, menu := range menus {
		for index, item := range menu.Items {
			urls := candidateURLs(item)
			if len(urls) == 0 {
				key := fmt.Sprintf("no_url::%s::%d", menu.File, index)
				group(key, nil).addOccurrence(menu, item)
				continue
			}
			for _, url := range urls {
				g := group(url, util.StringPtr(url))
				g.urls.add(url)
				for _, link := range item.Links {
					if link.URL == url {
						g.links.add(strings.TrimSpace(link.Text))
					}
				}
				g.addOccurrence(menu, item)
			}
		}
	}

	items := make([]internal.CatalogItem, 0, len(order))
	for _, key := range order {
		items = append(items, groups[key].toItem())
	}
	return items
}

// candidateURLs resolves an item's URLs: formatted-link URLs in encounter
// order, then bare URLs, deduplicated.
func candidateURLs(item internal.MenuItem) []string {
	urls := make([]string, 0, len(item.Links)+len(item.URLs))
	for _, link := range item.Links {
		urls = append(urls, link.URL)
	}
	urls = append(urls, item.URLs...)
	return util.UniquePreserve(urls)
}

// PrimaryTitle is the canonical label of a catalog entry: the first non-empty
// link text, else the first non-empty item text, else "" (untitled).
func PrimaryTitle(item internal.CatalogItem) string {
	if t := util.FirstNonEmpty(item.LinkTexts); t != "" {
		return t
	}
	return util.FirstNonEmpty(item.ItemTexts)
}

// MergeDuplicateTitles is the second consolidation pass: entries sharing a
// case-insensitive canonical title collapse into one. Untitled entries are
// never merged with anything.
func MergeDuplicateTitles(items []internal.CatalogItem) []internal.CatalogItem {
	grouped := map[string][]internal.CatalogItem{}
	order := make([]string, 0)
	untitled := make([]internal.CatalogItem, 0)

	for _, item := range items {
		title := PrimaryTitle(item)
		if title == "" {
			untitled = append(untitled, item)
			continue
		}
		key := strings.ToLower(title)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], item)
	}

	out := make([]internal.CatalogItem, 0, len(items))
	for _, key := range order {
		entries := grouped[key]
		if len(entries) == 1 {
			out = append(out, entries[0])
			continue
		}
		out = append(out, MergeEntries(entries))
	}
	return append(out, untitled...)
}

// MergeEntries combines catalog entries into one: provenance sets are unioned
// in first-seen order, counts are summed, and the representative URL is chosen
// by majority vote, one vote per constituent, with ties broken by the
// lexicographically smallest URL so reruns always pick the same one.
func MergeEntries(entries []internal.CatalogItem) internal.CatalogItem {
	merged := newCatalogGroup(mergedURL(entries))
	for _, entry := range entries {
		merged.urls.addAll(entry.URLs)
		merged.links.addAll(entry.LinkTexts)
		merged.files.addAll(entry.MenuFiles)
		merged.weeks.addAll(entry.MenuWeeks)
		merged.seas.addAll(entry.MenuSeasons)
		merged.meals.addAll(entry.MealTypes)
		merged.secs.addAll(entry.Sections)
		merged.hints.addAll(entry.SourceHints)
		merged.texts.addAll(entry.ItemTexts)
		merged.count += entry.Count
	}
	return merged.toItem()
}

func mergedURL(entries []internal.CatalogItem) *string {
	votes := map[string]int{}
	for _, entry := range entries {
		if entry.URL != nil {
			votes[*entry.URL]++
		}
	}
	if len(votes) == 0 {
		return nil
	}
	max := 0
	for _, n := range votes {
		if n > max {
			max = n
		}
	}
	candidates := make([]string, 0, len(votes))
	for url, n := range votes {
		if n == max {
			candidates = append(candidates, url)
		}
	}
	sort.Strings(candidates)
	return util.StringPtr(candidates[0])
}

// SortCatalog orders entries by count descending, then URL ascending with
// URL-less entries last. This ordering is stable across reruns and governs
// every "most common dishes" view.
func SortCatalog(items []internal.CatalogItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		if (items[i].URL == nil) != (items[j].URL == nil) {
			return items[j].URL == nil
		}
		return util.Deref(items[i].URL) < util.Deref(items[j].URL)
	})
}

// BuildCatalog runs both consolidation passes and sorts the result.
func BuildCatalog(menus []internal.Menu) []internal.CatalogItem {
	items := MergeDuplicateTitles(GroupByURL(menus))
	SortCatalog(items)
	return items
}
