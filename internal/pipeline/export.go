package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"menumaker/internal"
	"menumaker/internal/util"
)

// ExportCatalogToXLSX writes the catalog as a report workbook, one row per
// entry, in catalog order (most common dishes first).
func ExportCatalogToXLSX(items []internal.CatalogItem, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"title", "url", "count", "urls",
		"menu_files", "menu_weeks", "menu_seasons",
		"meal_types", "sections", "source_hints", "item_texts",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, PrimaryTitle(item))
		set(2, util.Deref(item.URL))
		set(3, item.Count)
		set(4, strings.Join(item.URLs, "; "))
		set(5, strings.Join(item.MenuFiles, "; "))
		set(6, strings.Join(item.MenuWeeks, "; "))
		set(7, strings.Join(item.MenuSeasons, "; "))
		set(8, strings.Join(item.MealTypes, "; "))
		set(9, strings.Join(item.Sections, "; "))
		set(10, strings.Join(item.SourceHints, "; "))
		set(11, strings.Join(item.ItemTexts, "; "))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
