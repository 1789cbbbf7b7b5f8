package pipeline

import "testing"

func TestExtractFormattedLinkWithHint(t *testing.T) {
	got := ExtractLinks("Tacos [recipe](https://x.com/tacos) (via Sam)")
	if len(got.Links) != 1 || got.Links[0].URL != "https://x.com/tacos" || got.Links[0].Text != "recipe" {
		t.Fatalf("links=%v", got.Links)
	}
	if len(got.BareURLs) != 0 {
		t.Fatalf("bare=%v", got.BareURLs)
	}
	if got.DisplayText != "Tacos" {
		t.Fatalf("display=%q", got.DisplayText)
	}

	hint := ExtractSourceHint("Tacos [recipe](https://x.com/tacos) (via Sam)")
	if hint == nil || *hint != "via Sam" {
		t.Fatalf("hint=%v", hint)
	}
}

func TestBareURLNeverDuplicatesFormattedLink(t *testing.T) {
	got := ExtractLinks("Soup [recipe](https://a.com/soup) https://a.com/soup")
	if len(got.Links) != 1 {
		t.Fatalf("links=%v", got.Links)
	}
	if len(got.BareURLs) != 0 {
		t.Fatalf("bare=%v", got.BareURLs)
	}
}

func TestBareURLExtracted(t *testing.T) {
	got := ExtractLinks("Lentil soup https://a.com/lentil-soup")
	if len(got.Links) != 0 || len(got.BareURLs) != 1 || got.BareURLs[0] != "https://a.com/lentil-soup" {
		t.Fatalf("got=%+v", got)
	}
	if got.DisplayText != "Lentil soup" {
		t.Fatalf("display=%q", got.DisplayText)
	}
}

func TestDisplayTextStripsHTMLAndDomainFragments(t *testing.T) {
	got := ExtractLinks("<u>Burst tomato pasta</u> pinchofyum.com/burst-tomato-pasta")
	if got.DisplayText != "Burst tomato pasta" {
		t.Fatalf("display=%q", got.DisplayText)
	}
}

func TestNumericParentheticalIsNotAHint(t *testing.T) {
	if hint := ExtractSourceHint("Pancakes (makes 12)"); hint != nil {
		t.Fatalf("hint=%v", *hint)
	}
	if hint := ExtractSourceHint("Pancakes"); hint != nil {
		t.Fatalf("hint=%v", *hint)
	}
	got := ExtractLinks("Pancakes (makes 12)")
	if got.DisplayText != "Pancakes (makes 12)" {
		t.Fatalf("display=%q", got.DisplayText)
	}
}
