package pipeline

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"menumaker/internal"
	"menumaker/internal/util"
)

var (
	urlLikeRe     = regexp.MustCompile(`(?i)https?://|\.(com|net|org|edu|gov)/`)
	extensionRe   = regexp.MustCompile(`\.[a-zA-Z0-9]+$`)
	titleCaser    = cases.Title(language.AmericanEnglish)
	bodyURLRe     = regexp.MustCompile(`https?://[^\s)]+`)
	separatorRepl = strings.NewReplacer("-", " ", "_", " ")
)

// LooksLikeURL reports whether a label is really a URL pasted where a title
// belongs: a protocol prefix or a domain.tld/ fragment.
func LooksLikeURL(text string) bool {
	return urlLikeRe.MatchString(text)
}

// TitleFromURL derives a human-readable title from a URL's final path
// segment: extension stripped, separators spaced, title-cased. Returns ""
// when the URL has no usable path.
func TitleFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	p := strings.Trim(parsed.Path, "/")
	if p == "" {
		return ""
	}
	segments := strings.Split(p, "/")
	slug := segments[len(segments)-1]
	slug = extensionRe.ReplaceAllString(slug, "")
	slug = util.NormalizeSpaces(separatorRepl.Replace(slug))
	if slug == "" {
		return ""
	}
	return titleCaser.String(slug)
}

// FixCatalogTitles repairs entries whose only labels are URLs by swapping in
// a title derived from the entry's URL. Entries with no URL to derive from
// are left unresolved; a title is never invented.
func FixCatalogTitles(items []internal.CatalogItem) int {
	changed := 0
	for i := range items {
		if fixCatalogEntry(&items[i]) {
			changed++
		}
	}
	return changed
}

func fixCatalogEntry(item *internal.CatalogItem) bool {
	derived := ""
	if item.URL != nil {
		derived = TitleFromURL(*item.URL)
	}
	if derived == "" {
		return false
	}

	if len(item.LinkTexts) > 0 && allURLLike(item.LinkTexts) {
		item.LinkTexts = []string{derived}
		return true
	}
	if util.FirstNonEmpty(item.LinkTexts) == "" {
		item.LinkTexts = []string{derived}
		return true
	}
	if anyURLLike(item.LinkTexts) {
		out := make([]string, len(item.LinkTexts))
		for i, t := range item.LinkTexts {
			if LooksLikeURL(t) {
				out[i] = derived
			} else {
				out[i] = t
			}
		}
		item.LinkTexts = util.UniquePreserve(out)
		return true
	}
	return false
}

// FixRecipeTitles repairs recipe records whose title is missing or is itself
// a URL. A real in-document heading wins; only when no heading exists is a
// title derived from the recipe's first external URL.
func FixRecipeTitles(recipes []internal.Recipe) int {
	changed := 0
	for i := range recipes {
		if fixRecipeTitle(&recipes[i]) {
			changed++
		}
	}
	return changed
}

func fixRecipeTitle(recipe *internal.Recipe) bool {
	title := strings.TrimSpace(util.Deref(recipe.Title))
	heading := headingTitle(recipe.Text)

	if title == "" || LooksLikeURL(title) {
		if heading != "" {
			recipe.Title = util.StringPtr(heading)
			return true
		}
		source := firstExternalURL(*recipe)
		if source == "" {
			source = title
		}
		if derived := TitleFromURL(source); derived != "" {
			recipe.Title = util.StringPtr(derived)
			return true
		}
	}
	return false
}

func headingTitle(text string) string {
	for _, line := range splitDocumentLines(text) {
		m := topHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		heading := strings.TrimSpace(m[1])
		if heading != "" && !LooksLikeURL(heading) {
			return heading
		}
	}
	return ""
}

func firstExternalURL(recipe internal.Recipe) string {
	for _, u := range recipe.URLs {
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			return u
		}
	}
	for _, link := range recipe.Links {
		if strings.HasPrefix(link.URL, "http://") || strings.HasPrefix(link.URL, "https://") {
			return link.URL
		}
	}
	return bodyURLRe.FindString(recipe.Text)
}

func allURLLike(texts []string) bool {
	for _, t := range texts {
		if !LooksLikeURL(t) {
			return false
		}
	}
	return len(texts) > 0
}

func anyURLLike(texts []string) bool {
	for _, t := range texts {
		if LooksLikeURL(t) {
			return true
		}
	}
	return false
}
