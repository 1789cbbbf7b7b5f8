package pipeline

import (
	"reflect"
	"testing"
)

func TestSplitMultiCheckbox(t *testing.T) {
	lines, _ := NormalizeLines([]string{"- [ ] Tacos - [x] Greek salad"})
	want := []string{"- [ ] Tacos", "- [x] Greek salad"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines=%v", lines)
	}
}

func TestSplitMultiLinks(t *testing.T) {
	in := "- [ ] Tacos [one](https://a.com/x) and [two](https://b.com/y)"
	lines, _ := NormalizeLines([]string{in})
	want := []string{
		"- [ ] Tacos [one](https://a.com/x)",
		"- [ ] and [two](https://b.com/y)",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines=%v", lines)
	}
}

func TestBareURLDuplicatingFormattedLinkDoesNotSplit(t *testing.T) {
	in := "- [ ] Soup [recipe](https://a.com/soup) https://a.com/soup"
	lines, _ := NormalizeLines([]string{in})
	if len(lines) != 1 || lines[0] != in {
		t.Fatalf("lines=%v", lines)
	}
}

func TestMixedFormattedAndBareLinksSplit(t *testing.T) {
	in := "- [ ] Soup [recipe](https://a.com/soup) https://b.com/stew"
	lines, _ := NormalizeLines([]string{in})
	want := []string{
		"- [ ] Soup [recipe](https://a.com/soup)",
		"- [ ] https://b.com/stew",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines=%v", lines)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := []string{
		"# Week of 6-1-21",
		"",
		"Dinner",
		"- [ ] Tacos - [x] Salad [a](https://a.com/x) and [b](https://b.com/y)",
		"- [ ] Plain item with no links",
		"  - [x] indented [one](https://a.com/1) [two](https://a.com/2)",
	}
	once, _ := NormalizeLines(in)
	twice, _ := NormalizeLines(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent:\nonce=%v\ntwice=%v", once, twice)
	}
}

func TestNonMatchingLinesPassThrough(t *testing.T) {
	in := []string{"# Title", "", "Dinner (5)", "plain prose line"}
	out, stats := NormalizeLines(in)
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("out=%v", out)
	}
	if stats.CheckboxSplits != 0 || stats.LinkSplits != 0 {
		t.Fatalf("stats=%+v", stats)
	}
}

func TestIndentPreservedOnSplit(t *testing.T) {
	lines, _ := NormalizeLines([]string{"  - [ ] A [x](https://a.com/1) [y](https://a.com/2)"})
	if len(lines) != 2 {
		t.Fatalf("lines=%v", lines)
	}
	for _, line := range lines {
		if line[:4] != "  - " {
			t.Fatalf("indent lost: %q", line)
		}
	}
}
