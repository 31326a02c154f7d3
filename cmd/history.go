package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/tasks"
)

const defaultHistoryEntries = 20

// historyCommand prints the most recent journal entries for this project.
func (c *cli) historyCommand(args []string) error {
	fs := flag.NewFlagSet("tasker history", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	n := fs.Int("n", defaultHistoryEntries, "Number of entries to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	path, err := logging.JournalPath(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding journal: %w", err)
	}
	entries, err := logging.ReadJournal(path, *n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "No history.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(c.stdout, "%s  %-8s #%d %s (%s)\n",
			e.Time.Local().Format(tasks.TimeLayout), e.Op, e.TaskID, e.Description,
			tasks.Priority(e.Priority).Label())
	}
	return nil
}
