package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ferrum-web/ferrum/cmd/ferrum/internal/config"
	"github.com/ferrum-web/ferrum/pkg/format"
	"github.com/spf13/cobra"
)

func newFmtCommand() *cobra.Command {
	var check bool
	var indentSize int
	var useTabs bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format .frr files",
		Long: `Formats .frr files to the canonical style: shorthand ids and classes,
quoted text, configured indentation. With no arguments, formats every file
under the source directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args, check, cmd.Flags().Changed("indent"), indentSize, useTabs)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report files that would change without rewriting them")
	cmd.Flags().IntVar(&indentSize, "indent", 4, "Indent size in spaces")
	cmd.Flags().BoolVar(&useTabs, "tabs", false, "Indent with tabs")

	return cmd
}

func runFmt(files []string, check, indentSet bool, indentSize int, useTabs bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load %s: %v (using defaults)", config.FileName, err)
		cfg = config.DefaultConfig()
	}

	size, char := cfg.IndentChar()
	if indentSet {
		size, char = indentSize, ' '
	}
	if useTabs {
		size, char = 1, '\t'
	}
	formatter := format.New(size, char)

	if len(files) == 0 {
		files, err = findSources(cfg.SrcDir)
		if err != nil {
			return fmt.Errorf("scan %s: %w", cfg.SrcDir, err)
		}
	}

	changed := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		formatted, err := formatter.Format(string(data))
		if err != nil {
			return fmt.Errorf("format %s: %w", file, err)
		}
		if formatted == string(data) {
			continue
		}

		changed++
		if check {
			fmt.Println(file)
			continue
		}
		if err := os.WriteFile(file, []byte(formatted), 0644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		log.Printf("  formatted %s", file)
	}

	if check && changed > 0 {
		return fmt.Errorf("%d files need formatting", changed)
	}
	return nil
}
