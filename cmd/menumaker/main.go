package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"menumaker/internal/config"
	"menumaker/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	svc := pipeline.NewService(cfg)

	cmd := os.Args[1]
	switch cmd {
	case "normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.MenusDir, "menus directory")
		_ = fs.Parse(os.Args[2:])
		changed, err := pipeline.NormalizeDir(*dir)
		must(err)
		if len(changed) == 0 {
			fmt.Println("no changes needed")
			return
		}
		fmt.Println("updated:")
		for _, name := range changed {
			fmt.Printf("- %s\n", name)
		}
	case "extract":
		menus, recipes, err := svc.Extract()
		must(err)
		fmt.Printf("extract done menus=%d recipes=%d\n", menus, recipes)
	case "links:apply":
		added, err := svc.ApplyCorrections()
		must(err)
		fmt.Printf("auto-added links: %d\n", added)
	case "links:remove":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", filepath.Join(cfg.DataDir, "link_removals.json"), "removal list path")
		_ = fs.Parse(os.Args[2:])
		removed, err := svc.RemoveCorrections(*file)
		must(err)
		fmt.Printf("auto-added links removed: %d\n", removed)
	case "catalog:build":
		count, err := svc.BuildCatalogArtifact()
		must(err)
		fmt.Printf("catalog built items=%d\n", count)
	case "catalog:merge-titles":
		merged, err := svc.MergeCatalogTitles()
		must(err)
		fmt.Printf("title merge done collapsed=%d\n", merged)
	case "titles:fix":
		catalogFixed, recipesFixed, err := svc.FixTitles()
		must(err)
		fmt.Printf("fixed titles catalog=%d recipes=%d\n", catalogFixed, recipesFixed)
	case "sources:build":
		count, err := svc.BuildSources()
		must(err)
		fmt.Printf("sources built domains=%d\n", count)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, pipeline.XLSXName), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		rows, err := svc.ExportXLSX(*out)
		must(err)
		fmt.Printf("exported %d rows to %s\n", rows, *out)
	case "export:sqlite":
		must(svc.ExportSQLite())
		fmt.Printf("snapshot written to %s\n", cfg.DBPath)
	case "rebuild":
		stats, err := svc.Rebuild()
		must(err)
		fmt.Printf("rebuild done menus=%d recipes=%d linksAdded=%d items=%d titlesFixed=%d/%d domains=%d xlsxRows=%d\n",
			stats.Menus, stats.Recipes, stats.LinksAdded, stats.CatalogItems,
			stats.CatalogFixed, stats.RecipesFixed, stats.Websites, stats.XLSXRows)
		fmt.Printf("exports: %s, %s\n", svc.XLSXPath(), cfg.DBPath)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: menumaker <command>")
	fmt.Println("commands:")
	fmt.Println("  normalize [--dir=./Menus]")
	fmt.Println("  extract")
	fmt.Println("  links:apply")
	fmt.Println("  links:remove [--file=./data/link_removals.json]")
	fmt.Println("  catalog:build")
	fmt.Println("  catalog:merge-titles")
	fmt.Println("  titles:fix")
	fmt.Println("  sources:build")
	fmt.Println("  export:xlsx [--out=./out/menumaker.xlsx]")
	fmt.Println("  export:sqlite")
	fmt.Println("  rebuild")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
