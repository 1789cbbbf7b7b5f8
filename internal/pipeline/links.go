package pipeline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"menumaker/internal"
	"menumaker/internal/util"
)

var (
	domainFragmentRe = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9.-]*\.[a-z]{2,}/[^\s)]*`)
	trailingParenRe  = regexp.MustCompile(`\(([^)]+)\)\s*$`)
	htmlTagRe        = regexp.MustCompile(`<[^>]+>`)
	digitRe          = regexp.MustCompile(`\d`)
)

type ExtractedLinks struct {
	Links       []internal.Link
	BareURLs    []string
	DisplayText string
}

// ExtractLinks pulls formatted [label](url) links and bare URLs out of an
// item's text. A bare URL that lies inside a formatted link's span, or that
// duplicates a formatted link's URL, is dropped so it is never reported twice.
// DisplayText is what remains once every link span, stray domain fragment,
// HTML tag, and extracted source hint is removed.
func ExtractLinks(text string) ExtractedLinks {
	mdMatches := mdLinkRe.FindAllStringSubmatchIndex(text, -1)
	links := make([]internal.Link, 0, len(mdMatches))
	mdURLs := map[string]struct{}{}
	for _, m := range mdMatches {
		url := text[m[4]:m[5]]
		links = append(links, internal.Link{Text: text[m[2]:m[3]], URL: url})
		mdURLs[url] = struct{}{}
	}

	bare := make([]string, 0)
	bareSpans := make([][2]int, 0)
	for _, m := range bareURLRe.FindAllStringIndex(text, -1) {
		inside := false
		for _, md := range mdMatches {
			if m[0] >= md[0] && m[1] <= md[1] {
				inside = true
				break
			}
		}
		if inside {
			continue
		}
		url := text[m[0]:m[1]]
		if _, dup := mdURLs[url]; dup {
			continue
		}
		bare = append(bare, url)
		bareSpans = append(bareSpans, [2]int{m[0], m[1]})
	}

	display := removeSpans(text, mdMatches, bareSpans)
	display = domainFragmentRe.ReplaceAllString(display, " ")
	display = stripHTML(display)
	if hint := sourceHintOf(display); hint != "" {
		display = trailingParenRe.ReplaceAllString(display, " ")
	}
	display = util.NormalizeSpaces(display)

	return ExtractedLinks{Links: links, BareURLs: bare, DisplayText: display}
}

// ExtractSourceHint returns a trailing parenthetical attribution such as
// "(via Sam)". Parentheticals containing digits are quantities or dates, not
// attributions, and yield nil. This is a heuristic; misses are acceptable.
func ExtractSourceHint(text string) *string {
	if hint := sourceHintOf(text); hint != "" {
		return util.StringPtr(hint)
	}
	return nil
}

func sourceHintOf(text string) string {
	m := trailingParenRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	hint := strings.TrimSpace(m[1])
	if hint == "" || digitRe.MatchString(hint) {
		return ""
	}
	return hint
}

func removeSpans(text string, mdMatches [][]int, bareSpans [][2]int) string {
	spans := make([][2]int, 0, len(mdMatches)+len(bareSpans))
	for _, m := range mdMatches {
		spans = append(spans, [2]int{m[0], m[1]})
	}
	spans = append(spans, bareSpans...)

	drop := make([]bool, len(text))
	for _, span := range spans {
		for i := span[0]; i < span[1]; i++ {
			drop[i] = true
		}
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if drop[i] {
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// stripHTML flattens markup like <u>...</u> that survives in hand-pasted
// items. goquery handles nesting and entities; the regex is a fallback for
// fragments goquery cannot parse.
func stripHTML(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return htmlTagRe.ReplaceAllString(text, " ")
	}
	return doc.Text()
}
