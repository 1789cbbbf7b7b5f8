package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	checkboxTokenRe  = regexp.MustCompile(`-\s*\[([xX ])\]\s*`)
	checkboxPrefixRe = regexp.MustCompile(`^(\s*)-\s*\[([xX ])\]\s*`)
	mdLinkRe         = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bareURLRe        = regexp.MustCompile(`https?://[^\s)\](]+`)
)

type NormalizeStats struct {
	CheckboxSplits int
	LinkSplits     int
}

// NormalizeLines rewrites checklist lines so every line carries at most one
// checkbox marker and, within it, at most one link token. Lines that match
// neither pattern pass through unchanged. The result is a fixed point:
// normalizing it again changes nothing.
func NormalizeLines(lines []string) ([]string, NormalizeStats) {
	stats := NormalizeStats{}

	// First distribute checkbox markers, then link tokens. A freshly split
	// checkbox line may still carry several links, so the passes are ordered.
	afterCheckbox := make([]string, 0, len(lines))
	for _, line := range lines {
		if split := splitMultiCheckbox(line); split != nil {
			afterCheckbox = append(afterCheckbox, split...)
			stats.CheckboxSplits++
			continue
		}
		afterCheckbox = append(afterCheckbox, line)
	}

	out := make([]string, 0, len(afterCheckbox))
	for _, line := range afterCheckbox {
		if split := splitMultiLinks(line); split != nil {
			out = append(out, split...)
			stats.LinkSplits++
			continue
		}
		out = append(out, line)
	}

	return out, stats
}

// splitMultiCheckbox turns a line containing N>1 checkbox markers into N
// lines, each keeping the text between its marker and the next one.
func splitMultiCheckbox(line string) []string {
	tokens := checkboxTokenRe.FindAllStringSubmatchIndex(line, -1)
	if len(tokens) <= 1 {
		return nil
	}

	indent := ""
	if prefix := checkboxPrefixRe.FindStringSubmatch(line); prefix != nil {
		indent = prefix[1]
	}

	out := make([]string, 0, len(tokens))
	for i, token := range tokens {
		start := token[1]
		end := len(line)
		if i+1 < len(tokens) {
			end = tokens[i+1][0]
		}
		text := strings.TrimSpace(line[start:end])
		if text == "" {
			continue
		}
		mark := line[token[2]:token[3]]
		out = append(out, fmt.Sprintf("%s- [%s] %s", indent, mark, text))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type linkToken struct {
	repr  string
	start int
	end   int
}

// extractLinkTokens finds formatted links and bare URLs in order of
// appearance. A bare URL inside a formatted link's span, or duplicating a
// formatted link's URL, is discarded so the same link is never counted twice.
func extractLinkTokens(text string) []linkToken {
	mdMatches := mdLinkRe.FindAllStringSubmatchIndex(text, -1)
	mdURLs := map[string]struct{}{}
	tokens := make([]linkToken, 0, len(mdMatches))
	for _, m := range mdMatches {
		tokens = append(tokens, linkToken{repr: text[m[0]:m[1]], start: m[0], end: m[1]})
		mdURLs[text[m[4]:m[5]]] = struct{}{}
	}

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
		tokens = append(tokens, linkToken{repr: url, start: m[0], end: m[1]})
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].start < tokens[j].start })
	return tokens
}

// splitMultiLinks turns a single-checkbox line holding several link tokens
// into one line per token. Text between tokens stays with the token that
// follows it; trailing text joins the last line.
func splitMultiLinks(line string) []string {
	prefix := checkboxPrefixRe.FindStringSubmatchIndex(line)
	if prefix == nil {
		return nil
	}
	indent := line[prefix[2]:prefix[3]]
	mark := line[prefix[4]:prefix[5]]
	text := strings.TrimSpace(line[prefix[1]:])
	if text == "" {
		return nil
	}

	tokens := extractLinkTokens(text)
	if len(tokens) <= 1 {
		return nil
	}

	segments := make([]string, 0, len(tokens)+1)
	last := 0
	for _, token := range tokens {
		segments = append(segments, text[last:token.start])
		last = token.end
	}
	segments = append(segments, text[last:])

	out := make([]string, 0, len(tokens))
	for idx, token := range tokens {
		desc := strings.TrimSpace(segments[idx])
		if idx == len(tokens)-1 {
			desc = strings.TrimSpace(desc + " " + strings.TrimSpace(segments[idx+1]))
		}
		itemText := token.repr
		if desc != "" {
			itemText = desc + " " + token.repr
		}
		out = append(out, fmt.Sprintf("%s- [%s] %s", indent, mark, itemText))
	}
	return out
}

// NormalizeFile rewrites one document in place and reports whether it changed.
func NormalizeFile(path string) (bool, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	lines := splitDocumentLines(string(blob))
	normalized, stats := NormalizeLines(lines)
	if stats.CheckboxSplits > 0 {
		slog.Warn("split multi-checkbox lines", "file", filepath.Base(path), "lines", stats.CheckboxSplits)
	}
	if stats.LinkSplits > 0 {
		slog.Warn("split multi-link lines", "file", filepath.Base(path), "lines", stats.LinkSplits)
	}
	if equalLines(lines, normalized) {
		return false, nil
	}
	out := strings.Join(normalized, "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// NormalizeDir normalizes every markdown document under dir, returning the
// names of the files it rewrote.
func NormalizeDir(dir string) ([]string, error) {
	names, err := listMarkdownFiles(dir)
	if err != nil {
		return nil, err
	}
	changed := make([]string, 0)
	for _, name := range names {
		didChange, err := NormalizeFile(filepath.Join(dir, name))
		if err != nil {
			return changed, err
		}
		if didChange {
			changed = append(changed, name)
		}
	}
	return changed, nil
}

func splitDocumentLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func listMarkdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
