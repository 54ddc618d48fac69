package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferrum-web/ferrum/cmd/ferrum/internal/config"
	"github.com/ferrum-web/ferrum/cmd/ferrum/internal/ui"
	"github.com/spf13/cobra"
)

const mainTemplate = `import { create_signal } from "ferrum:state"

div#app.container
    h1.title "Hello World"
    p.text-gray-600 "Welcome to Ferrum"
    div.flex.items-center
        Button(onclick: set_count(-1))
            "-"
        count
        Button(onclick: set_count(1))
            "+"
`

const buttonTemplate = `button.rounded.shadow
    "Click me"
`

const indexTemplate = `<!DOCTYPE html>
<html lang='en'>
<head>
    <meta charset='UTF-8'>
    <title>%s</title>
</head>
<body>
    <div id='ferrum-app'></div>
</body>
</html>
`

func newCreateCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Create a new Ferrum project",
		Long:  `Scaffolds a new Ferrum project with a counter example and configuration.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Dev server port written to ferrum.yml")

	return cmd
}

func runCreate(name string, port int) error {
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("directory %s already exists", name)
	}

	fmt.Println(ui.Title("⚙️  Creating Ferrum project " + name))

	files := map[string]string{
		filepath.Join(name, "src", "main.frr"):                 mainTemplate,
		filepath.Join(name, "src", "components", "Button.frr"): buttonTemplate,
		filepath.Join(name, "public", "index.html"):            fmt.Sprintf(indexTemplate, name),
	}

	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println(ui.Muted("  created " + path))
	}

	cfg := config.DefaultConfig()
	cfg.Name = name
	cfg.Dev.Port = port
	if err := config.Save(cfg, name); err != nil {
		return fmt.Errorf("write %s: %w", config.FileName, err)
	}
	fmt.Println(ui.Muted("  created " + filepath.Join(name, config.FileName)))

	fmt.Println(ui.Success("\n✨ Project created"))
	fmt.Println(ui.Muted("\nNext steps:"))
	fmt.Printf("  cd %s\n", name)
	fmt.Println("  ferrum dev")

	return nil
}
