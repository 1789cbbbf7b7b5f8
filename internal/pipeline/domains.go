package pipeline

import (
	"net/url"
	"sort"
	"strings"

	"menumaker/internal"
	"menumaker/internal/util"
)

// DomainOf returns the lowercase hostname of a URL with any leading "www."
// stripped, or "" when the URL has no host.
func DomainOf(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

// BuildWebsites regroups the catalog by link domain. Each (domain, url) pair
// counts once no matter how many entries carry it; the occurrence metadata
// comes from the first-seen provenance of the entry that introduced the URL.
// Domains are emitted in lexicographic order.
func BuildWebsites(items []internal.CatalogItem) []internal.Website {
	type acc struct {
		items []internal.SourceItem
	}
	byDomain := map[string]*acc{}
	seen := map[string]struct{}{}

	for _, item := range items {
		for _, u := range item.URLs {
			domain := DomainOf(u)
			if domain == "" {
				continue
			}
			key := domain + "\x00" + u
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			a, ok := byDomain[domain]
			if !ok {
				a = &acc{}
				byDomain[domain] = a
			}
			var date *string
			if len(item.MenuWeeks) > 0 {
				date = util.StringPtr(item.MenuWeeks[0])
			}
			a.items = append(a.items, internal.SourceItem{
				URL:        u,
				MenuFile:   util.FirstNonEmpty(item.MenuFiles),
				MenuDate:   date,
				MenuSeason: util.FirstNonEmpty(item.MenuSeasons),
				ItemText:   util.FirstNonEmpty(item.ItemTexts),
				MealType:   util.FirstNonEmpty(item.MealTypes),
			})
		}
	}

	domains := make([]string, 0, len(byDomain))
	for domain := range byDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	websites := make([]internal.Website, 0, len(domains))
	for _, domain := range domains {
		a := byDomain[domain]
		websites = append(websites, internal.Website{
			Domain: domain,
			Count:  len(a.items),
			Items:  a.items,
		})
	}
	return websites
}
