package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Store writes JSON artifacts to the data directory and mirrors them into the
// app data directory consumed by the desktop viewer. Writes go through a temp
// file and an atomic rename, so a failed write never clobbers the target.
type Store struct {
	DataDir    string
	AppDataDir string
}

func NewStore(dataDir, appDataDir string) Store {
	return Store{DataDir: dataDir, AppDataDir: appDataDir}
}

func (s Store) WriteJSON(name string, v any) error {
	blob, err := EncodeASCII(v)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(s.DataDir, name), blob); err != nil {
		return err
	}
	if s.AppDataDir == "" {
		return nil
	}
	return writeFileAtomic(filepath.Join(s.AppDataDir, name), blob)
}

func (s Store) ReadJSON(name string, v any) error {
	blob, err := os.ReadFile(filepath.Join(s.DataDir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, v)
}

// EncodeASCII renders v as indented JSON with every non-ASCII rune escaped,
// matching the escaped-ASCII artifact contract.
func EncodeASCII(v any) ([]byte, error) {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return escapeNonASCII(blob), nil
}

func escapeNonASCII(blob []byte) []byte {
	out := make([]byte, 0, len(blob))
	for i := 0; i < len(blob); {
		b := blob[i]
		if b < utf8.RuneSelf {
			out = append(out, b)
			i++
			continue
		}
		r, size := utf8.DecodeRune(blob[i:])
		i += size
		if r <= 0xFFFF {
			out = append(out, fmt.Sprintf(`\u%04x`, r)...)
			continue
		}
		r -= 0x10000
		out = append(out, fmt.Sprintf(`\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))...)
	}
	return out
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
