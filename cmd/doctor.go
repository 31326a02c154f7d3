package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/tasks"
)

// doctorCommand checks config, the log directory and task file validity.
func (c *cli) doctorCommand(args []string) error {
	flags := flag.NewFlagSet("tasker doctor", flag.ContinueOnError)
	flags.SetOutput(c.stderr)
	verbose := flags.Bool("v", false, "Verbose output")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	w := c.stdout
	fmt.Fprintln(w, "Tasker Doctor")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Project root: %s\n", c.cfg.ProjectRoot)
	fmt.Fprintf(w, "  Log level: %s, format: %s\n", c.cfg.LogLevel, c.cfg.LogFormat)
	fmt.Fprintln(w)

	// Task file
	fmt.Fprintf(w, "Tasks file: %s\n", c.cfg.TasksFile)
	result := tasks.Validate(c.cfg.TasksFile)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	switch {
	case !result.Valid:
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		allOK = false
	case result.Exists:
		fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", result.Tasks)
	}
	if *verbose && result.Valid && result.Exists {
		store, err := tasks.Open(c.cfg.TasksFile)
		if err != nil {
			fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
			allOK = false
		} else {
			for _, t := range store.Tasks() {
				fmt.Fprintf(w, "    - [%s] %d: %s\n", t.Status(), t.ID, t.Description)
			}
		}
	}
	fmt.Fprintln(w)

	// Log directory and journal
	fmt.Fprintf(w, "Log directory: %s\n", c.cfg.LogDir)
	if info, err := os.Stat(c.cfg.LogDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first change)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	if !c.cfg.Journal {
		fmt.Fprintln(w, "  Journal: disabled")
	} else if path, err := logging.JournalPath(c.cfg.LogDir, c.cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Journal: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "  Journal: %s\n", path)
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
