package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ferrum-web/ferrum/cmd/ferrum/internal/config"
	"github.com/ferrum-web/ferrum/pkg/ast"
	"github.com/ferrum-web/ferrum/pkg/codegen"
	"github.com/ferrum-web/ferrum/pkg/parser"
	"github.com/ferrum-web/ferrum/pkg/styling"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	var output string
	var views bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the project for production",
		Long:  `Compiles every .frr file under the source directory to HTML in the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, views)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from ferrum.yml)")
	cmd.Flags().BoolVar(&views, "views", false, "Also emit generated view code next to each page")

	return cmd
}

func runBuild(output string, views bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load %s: %v (using defaults)", config.FileName, err)
		cfg = config.DefaultConfig()
	}
	if output == "" {
		output = cfg.Build.OutDir
	}

	log.Println("🚀 Building Ferrum project...")

	if err := os.RemoveAll(output); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clean output directory: %w", err)
	}
	if err := os.MkdirAll(output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	sources, err := findSources(cfg.SrcDir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", cfg.SrcDir, err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no .frr files found under %s", cfg.SrcDir)
	}

	var allClasses []string
	built := 0
	for _, src := range sources {
		nodes, err := compileFile(src, output, cfg.SrcDir, views)
		if err != nil {
			return err
		}
		allClasses = append(allClasses, styling.CollectClasses(nodes)...)
		built++
		log.Printf("  %s", src)
	}

	// One stylesheet covering the utility classes used across all pages.
	sheet := styling.Stylesheet(allClasses)
	if sheet != "" {
		cssPath := filepath.Join(output, "utilities.css")
		if err := os.WriteFile(cssPath, []byte(sheet), 0644); err != nil {
			return fmt.Errorf("write %s: %w", cssPath, err)
		}
	}

	log.Printf("✅ Built %d files to %s", built, output)
	reportBuildSize(output)
	return nil
}

func compileFile(src, output, srcDir string, views bool) ([]ast.Node, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	nodes, err := parser.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", src, err)
	}

	rel, err := filepath.Rel(srcDir, src)
	if err != nil {
		rel = filepath.Base(src)
	}

	htmlPath := filepath.Join(output, strings.TrimSuffix(rel, ".frr")+".html")
	if err := os.MkdirAll(filepath.Dir(htmlPath), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(htmlPath, []byte(codegen.ToHTML(nodes)), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", htmlPath, err)
	}

	if views {
		viewPath := filepath.Join(output, strings.TrimSuffix(rel, ".frr")+"_view.go.txt")
		if err := os.WriteFile(viewPath, []byte(codegen.ToViewCode(nodes)), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", viewPath, err)
		}
	}

	return nodes, nil
}

func findSources(srcDir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".frr") {
			sources = append(sources, path)
		}
		return nil
	})
	return sources, err
}

func reportBuildSize(output string) {
	var totalSize int64
	filepath.Walk(output, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})
	log.Printf("📦 Output size: %s", formatSize(totalSize))
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
