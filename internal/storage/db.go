package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"menumaker/internal"
)

// DB is the catalog snapshot consumed by the desktop viewer. It is rebuilt
// wholesale on every pipeline run and never read back by the pipeline itself.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS menus (
  file TEXT PRIMARY KEY,
  title TEXT,
  week_of_date TEXT,
  season TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  menu_file TEXT NOT NULL,
  position INTEGER NOT NULL,
  text TEXT NOT NULL,
  checked INTEGER NOT NULL,
  section TEXT,
  meal_type TEXT NOT NULL,
  source_hint TEXT,
  links_json TEXT NOT NULL,
  urls_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_menu_items_menu_file ON menu_items(menu_file);

CREATE TABLE IF NOT EXISTS catalog_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  url TEXT,
  count INTEGER NOT NULL,
  urls_json TEXT NOT NULL,
  link_texts_json TEXT NOT NULL,
  menu_files_json TEXT NOT NULL,
  menu_weeks_json TEXT NOT NULL,
  menu_seasons_json TEXT NOT NULL,
  meal_types_json TEXT NOT NULL,
  sections_json TEXT NOT NULL,
  source_hints_json TEXT NOT NULL,
  item_texts_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_catalog_items_url ON catalog_items(url);

CREATE TABLE IF NOT EXISTS websites (
  domain TEXT PRIMARY KEY,
  count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS website_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  domain TEXT NOT NULL,
  url TEXT NOT NULL,
  menu_file TEXT NOT NULL,
  menu_date TEXT,
  menu_season TEXT NOT NULL,
  item_text TEXT NOT NULL,
  meal_type TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_website_items_domain ON website_items(domain);
`
	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceSnapshot swaps the full snapshot in one transaction: every table is
// emptied and refilled so the database always reflects exactly one run.
func (d *DB) ReplaceSnapshot(menus []internal.Menu, items []internal.CatalogItem, websites []internal.Website) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"menus", "menu_items", "catalog_items", "websites", "website_items"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}

	for _, menu := range menus {
		if _, err := tx.Exec(
			`INSERT INTO menus (file, title, week_of_date, season) VALUES (?, ?, ?, ?)`,
			menu.File, menu.Title, menu.WeekOfDate, string(menu.Season),
		); err != nil {
			return err
		}
		for position, item := range menu.Items {
			linksJSON, err := json.Marshal(item.Links)
			if err != nil {
				return err
			}
			urlsJSON, err := json.Marshal(item.URLs)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				`INSERT INTO menu_items (menu_file, position, text, checked, section, meal_type, source_hint, links_json, urls_json)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				menu.File, position, item.Text, boolInt(item.Checked), item.Section,
				string(item.MealType), item.SourceHint, string(linksJSON), string(urlsJSON),
			); err != nil {
				return err
			}
		}
	}

	for _, item := range items {
		cols, err := marshalAll(
			item.URLs, item.LinkTexts, item.MenuFiles, item.MenuWeeks,
			item.MenuSeasons, item.MealTypes, item.Sections, item.SourceHints, item.ItemTexts,
		)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO catalog_items (url, count, urls_json, link_texts_json, menu_files_json, menu_weeks_json,
			   menu_seasons_json, meal_types_json, sections_json, source_hints_json, item_texts_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.URL, item.Count, cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6], cols[7], cols[8],
		); err != nil {
			return err
		}
	}

	for _, site := range websites {
		if _, err := tx.Exec(
			`INSERT INTO websites (domain, count) VALUES (?, ?)`,
			site.Domain, site.Count,
		); err != nil {
			return err
		}
		for _, item := range site.Items {
			if _, err := tx.Exec(
				`INSERT INTO website_items (domain, url, menu_file, menu_date, menu_season, item_text, meal_type)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				site.Domain, item.URL, item.MenuFile, item.MenuDate, item.MenuSeason, item.ItemText, item.MealType,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func marshalAll(lists ...[]string) ([]string, error) {
	out := make([]string, 0, len(lists))
	for _, list := range lists {
		if list == nil {
			list = []string{}
		}
		blob, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		out = append(out, string(blob))
	}
	return out, nil
}
