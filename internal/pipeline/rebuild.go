package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"menumaker/internal"
	"menumaker/internal/artifacts"
	"menumaker/internal/config"
	"menumaker/internal/storage"
)

const (
	MenusArtifact   = "menus.json"
	RecipesArtifact = "recipes.json"
	ItemsArtifact   = "menu_items.json"
	SourcesArtifact = "menu_sources.json"
)

type menusDoc struct {
	Menus []internal.Menu `json:"menus"`
}

type recipesDoc struct {
	Recipes []internal.Recipe `json:"recipes"`
}

type itemsDoc struct {
	Items []internal.CatalogItem `json:"items"`
}

type sourcesDoc struct {
	Websites []internal.Website `json:"websites"`
}

// Service runs the pipeline steps against the configured roots. Each step
// reads and writes the JSON artifacts, so steps can run standalone in the
// same order the rebuild uses.
type Service struct {
	cfg    config.Config
	store  artifacts.Store
	parser *Parser
}

func NewService(cfg config.Config) *Service {
	return &Service{
		cfg:    cfg,
		store:  artifacts.NewStore(cfg.DataDir, cfg.AppDataDir),
		parser: NewParser(),
	}
}

// Extract parses all menu and recipe documents and writes the base artifacts.
func (s *Service) Extract() (menuCount, recipeCount int, err error) {
	menus, err := s.parser.LoadMenus(s.cfg.MenusDir)
	if err != nil {
		return 0, 0, err
	}
	recipes, err := s.parser.LoadRecipes(s.cfg.RecipesDir)
	if err != nil {
		return 0, 0, err
	}
	if err := s.store.WriteJSON(MenusArtifact, menusDoc{Menus: menus}); err != nil {
		return 0, 0, err
	}
	if err := s.store.WriteJSON(RecipesArtifact, recipesDoc{Recipes: recipes}); err != nil {
		return 0, 0, err
	}
	return len(menus), len(recipes), nil
}

// ApplyCorrections attaches curated links to link-less items in the menus
// artifact. A missing corrections file means there is nothing to apply.
func (s *Service) ApplyCorrections() (int, error) {
	rules, err := LoadCorrections(s.cfg.CorrectionsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var doc menusDoc
	if err := s.store.ReadJSON(MenusArtifact, &doc); err != nil {
		return 0, err
	}
	added := ApplyCorrections(doc.Menus, rules)
	if added == 0 {
		return 0, nil
	}
	return added, s.store.WriteJSON(MenusArtifact, doc)
}

// RemoveCorrections prunes auto-added links named in the removal list from
// the menus artifact. Hand-authored links survive; a missing list file means
// there is nothing to remove.
func (s *Service) RemoveCorrections(listPath string) (int, error) {
	urls, err := LoadRemovalList(listPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var doc menusDoc
	if err := s.store.ReadJSON(MenusArtifact, &doc); err != nil {
		return 0, err
	}
	removed := RemoveAutoLinks(doc.Menus, urls)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.store.WriteJSON(MenusArtifact, doc)
}

// BuildCatalogArtifact runs both consolidation passes over the menus
// artifact and writes the catalog.
func (s *Service) BuildCatalogArtifact() (int, error) {
	var doc menusDoc
	if err := s.store.ReadJSON(MenusArtifact, &doc); err != nil {
		return 0, err
	}
	items := BuildCatalog(doc.Menus)
	if err := s.store.WriteJSON(ItemsArtifact, itemsDoc{Items: items}); err != nil {
		return 0, err
	}
	return len(items), nil
}

// MergeCatalogTitles re-runs the title-merge pass over the catalog artifact
// in place. The write is atomic, so a failure leaves the input untouched.
func (s *Service) MergeCatalogTitles() (int, error) {
	var doc itemsDoc
	if err := s.store.ReadJSON(ItemsArtifact, &doc); err != nil {
		return 0, err
	}
	before := len(doc.Items)
	merged := MergeDuplicateTitles(doc.Items)
	SortCatalog(merged)
	if err := s.store.WriteJSON(ItemsArtifact, itemsDoc{Items: merged}); err != nil {
		return 0, err
	}
	return before - len(merged), nil
}

// FixTitles repairs URL-looking titles in the catalog and the recipe index.
func (s *Service) FixTitles() (catalogFixed, recipesFixed int, err error) {
	var items itemsDoc
	if err := s.store.ReadJSON(ItemsArtifact, &items); err != nil {
		return 0, 0, err
	}
	catalogFixed = FixCatalogTitles(items.Items)
	if catalogFixed > 0 {
		if err := s.store.WriteJSON(ItemsArtifact, items); err != nil {
			return 0, 0, err
		}
	}

	var recipes recipesDoc
	if err := s.store.ReadJSON(RecipesArtifact, &recipes); err != nil {
		if os.IsNotExist(err) {
			return catalogFixed, 0, nil
		}
		return catalogFixed, 0, err
	}
	recipesFixed = FixRecipeTitles(recipes.Recipes)
	if recipesFixed > 0 {
		if err := s.store.WriteJSON(RecipesArtifact, recipes); err != nil {
			return catalogFixed, 0, err
		}
	}
	return catalogFixed, recipesFixed, nil
}

// BuildSources writes the provenance-by-domain view. The input is the raw
// URL-grouped catalog recomputed from the menus artifact, or the title-merged
// catalog artifact when so configured.
func (s *Service) BuildSources() (int, error) {
	var items []internal.CatalogItem
	if s.cfg.SourcesFromMergedCatalog {
		var doc itemsDoc
		if err := s.store.ReadJSON(ItemsArtifact, &doc); err != nil {
			return 0, err
		}
		items = doc.Items
	} else {
		var doc menusDoc
		if err := s.store.ReadJSON(MenusArtifact, &doc); err != nil {
			return 0, err
		}
		items = GroupByURL(doc.Menus)
	}
	websites := BuildWebsites(items)
	if err := s.store.WriteJSON(SourcesArtifact, sourcesDoc{Websites: websites}); err != nil {
		return 0, err
	}
	return len(websites), nil
}

// ExportXLSX writes the catalog report workbook.
func (s *Service) ExportXLSX(outputPath string) (int, error) {
	var doc itemsDoc
	if err := s.store.ReadJSON(ItemsArtifact, &doc); err != nil {
		return 0, err
	}
	if err := ExportCatalogToXLSX(doc.Items, outputPath); err != nil {
		return 0, err
	}
	return len(doc.Items), nil
}

// ExportSQLite regenerates the snapshot database from the current artifacts.
func (s *Service) ExportSQLite() error {
	var menus menusDoc
	if err := s.store.ReadJSON(MenusArtifact, &menus); err != nil {
		return err
	}
	var items itemsDoc
	if err := s.store.ReadJSON(ItemsArtifact, &items); err != nil {
		return err
	}
	var sources sourcesDoc
	if err := s.store.ReadJSON(SourcesArtifact, &sources); err != nil {
		return err
	}

	db, err := storage.Open(s.cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.ReplaceSnapshot(menus.Menus, items.Items, sources.Websites)
}

// XLSXName is the workbook filename written under the output directory.
const XLSXName = "menumaker.xlsx"

// XLSXPath is where the rebuild writes the catalog workbook.
func (s *Service) XLSXPath() string {
	return filepath.Join(s.cfg.OutputDir, XLSXName)
}

type RebuildStats struct {
	Menus        int
	Recipes      int
	LinksAdded   int
	CatalogItems int
	CatalogFixed int
	RecipesFixed int
	Websites     int
	XLSXRows     int
}

// Rebuild regenerates every derived artifact in the fixed order:
// extract, corrections, catalog, title fixes, sources, exports. Each step is
// a pure function of the artifacts the previous one wrote.
func (s *Service) Rebuild() (RebuildStats, error) {
	stats := RebuildStats{}
	var err error

	if stats.Menus, stats.Recipes, err = s.Extract(); err != nil {
		return stats, fmt.Errorf("extract: %w", err)
	}
	if stats.LinksAdded, err = s.ApplyCorrections(); err != nil {
		return stats, fmt.Errorf("apply corrections: %w", err)
	}
	if stats.CatalogItems, err = s.BuildCatalogArtifact(); err != nil {
		return stats, fmt.Errorf("build catalog: %w", err)
	}
	if stats.CatalogFixed, stats.RecipesFixed, err = s.FixTitles(); err != nil {
		return stats, fmt.Errorf("fix titles: %w", err)
	}
	if stats.Websites, err = s.BuildSources(); err != nil {
		return stats, fmt.Errorf("build sources: %w", err)
	}
	if stats.XLSXRows, err = s.ExportXLSX(s.XLSXPath()); err != nil {
		return stats, fmt.Errorf("export xlsx: %w", err)
	}
	if err = s.ExportSQLite(); err != nil {
		return stats, fmt.Errorf("export sqlite: %w", err)
	}
	return stats, nil
}
