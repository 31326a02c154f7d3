package cmd

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nibzard/tasker-go/internal/export"
)

// exportCommand renders the task list to stdout or a file.
func (c *cli) exportCommand(args []string) error {
	fs := flag.NewFlagSet("tasker export", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", "json", "Output format ("+strings.Join(export.Formats(), "|")+")")
	output := fs.String("o", "", "Output file (required for pdf)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	name := strings.ToLower(strings.TrimSpace(*format))
	if name == "yml" {
		name = "yaml"
	}
	if !slices.Contains(export.Formats(), name) {
		return fmt.Errorf("unknown format %s", *format)
	}
	if name == "pdf" && *output == "" {
		return fmt.Errorf("pdf export requires -o")
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	list := store.Tasks()
	data, err := export.Render(list, name)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	if *output == "" {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(c.stdout, "Exported %d tasks to %s\n", len(list), *output)
	return nil
}
