package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeASCIIEscapesNonASCII(t *testing.T) {
	blob, err := EncodeASCII(map[string]string{"title": "Crème brûlée 🍮"})
	if err != nil {
		t.Fatal(err)
	}
	got := string(blob)
	// the dessert emoji is above the basic plane and escapes to a surrogate pair
	for _, want := range []string{"\\u00e8", "\\u00fb", "\\u00e9", "\\ud83c\\udf6e"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in %s", want, got)
		}
	}
	for _, b := range blob {
		if b >= 0x80 {
			t.Fatalf("non-ASCII byte in output: %q", got)
		}
	}
}

func TestWriteJSONMirrorsToAppData(t *testing.T) {
	data := t.TempDir()
	app := t.TempDir()
	store := NewStore(data, app)

	if err := store.WriteJSON("menus.json", map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{data, app} {
		if _, err := os.Stat(filepath.Join(dir, "menus.json")); err != nil {
			t.Fatalf("%s: %v", dir, err)
		}
	}
}

func TestWriteJSONSkipsEmptyAppData(t *testing.T) {
	store := NewStore(t.TempDir(), "")
	if err := store.WriteJSON("menus.json", map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), "")
	in := map[string]string{"k": "vålue"}
	if err := store.WriteJSON("x.json", in); err != nil {
		t.Fatal(err)
	}
	var out map[string]string
	if err := store.ReadJSON("x.json", &out); err != nil {
		t.Fatal(err)
	}
	if out["k"] != "vålue" {
		t.Fatalf("round trip lost data: %v", out)
	}
}

func TestWriteJSONLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "")
	if err := store.WriteJSON("x.json", 1); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "x.json" {
		t.Fatalf("entries=%v", entries)
	}
}
