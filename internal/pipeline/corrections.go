package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"menumaker/internal"
	"menumaker/internal/util"
)

// CorrectionRule retroactively attaches a known link to a bare-text item.
// Rules are declarative data, applied in declaration order; the first rule
// whose match is a prefix of the normalized item text wins.
type CorrectionRule struct {
	Match string `json:"match"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

	// Known multi-word synonyms collapsed before matching.
	synonymRepl = strings.NewReplacer(
		"cous cous", "couscous",
		"bar b que", "bbq",
		"barbecue", "bbq",
	)
)

// NormalizeItemText is the matching key for correction rules: lowercase,
// alphanumerics only, collapsed whitespace, synonyms canonicalized.
func NormalizeItemText(text string) string {
	s := strings.ToLower(text)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = util.NormalizeSpaces(s)
	return synonymRepl.Replace(s)
}

// LoadCorrections reads an ordered rule list from a JSON file. The file is
// either a bare array of rules or an object with a "rules" array.
func LoadCorrections(path string) ([]CorrectionRule, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules []CorrectionRule
	if err := json.Unmarshal(blob, &rules); err == nil {
		return rules, nil
	}
	var wrapped struct {
		Rules []CorrectionRule `json:"rules"`
	}
	if err := json.Unmarshal(blob, &wrapped); err != nil {
		return nil, fmt.Errorf("parse corrections %s: %w", path, err)
	}
	return wrapped.Rules, nil
}

// LoadRemovalList reads the URLs whose auto-added links should be pruned.
// The file is either a bare array of URLs or an object with a "urls" array.
func LoadRemovalList(path string) ([]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var urls []string
	if err := json.Unmarshal(blob, &urls); err == nil {
		return urls, nil
	}
	var wrapped struct {
		URLs []string `json:"urls"`
	}
	if err := json.Unmarshal(blob, &wrapped); err != nil {
		return nil, fmt.Errorf("parse removal list %s: %w", path, err)
	}
	return wrapped.URLs, nil
}

// ApplyCorrections attaches marked links to items lacking any link. An item
// that already has a formatted link or bare URL is never touched. Returns
// the number of links added.
func ApplyCorrections(menus []internal.Menu, rules []CorrectionRule) int {
	added := 0
	for mi := range menus {
		for ii := range menus[mi].Items {
			item := &menus[mi].Items[ii]
			if item.HasAnyLink() {
				continue
			}
			norm := NormalizeItemText(item.Text)
			for _, rule := range rules {
				key := NormalizeItemText(rule.Match)
				if key == "" || !strings.HasPrefix(norm, key) {
					continue
				}
				item.Links = append(item.Links, internal.Link{
					Text:      rule.Title,
					URL:       rule.URL,
					AutoAdded: true,
				})
				added++
				break
			}
		}
	}
	return added
}

// RemoveAutoLinks prunes auto-added links whose URL is on the removal list.
// Hand-authored links are never removed. Returns the number pruned.
func RemoveAutoLinks(menus []internal.Menu, removeURLs []string) int {
	doomed := map[string]struct{}{}
	for _, u := range removeURLs {
		doomed[u] = struct{}{}
	}
	removed := 0
	for mi := range menus {
		for ii := range menus[mi].Items {
			item := &menus[mi].Items[ii]
			if len(item.Links) == 0 {
				continue
			}
			kept := item.Links[:0]
			for _, link := range item.Links {
				if _, hit := doomed[link.URL]; hit && link.AutoAdded {
					removed++
					continue
				}
				kept = append(kept, link)
			}
			item.Links = kept
		}
	}
	return removed
}
