package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tasker-go/internal/tasks"
	"github.com/nibzard/tasker-go/internal/ui"
)

// addCommand appends a task built from the remaining arguments.
func (c *cli) addCommand(args []string) error {
	fs := flag.NewFlagSet("tasker add", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	priorityArg := fs.String("p", "medium", "Priority (low|medium|high)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	description := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if description == "" {
		c.logger.Warn("Please enter a task description.")
		return ErrEmptyDescription
	}
	priority, err := tasks.ParsePriority(*priorityArg)
	if err != nil {
		return err
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	task, err := store.Add(description, priority)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	fmt.Fprintf(c.stdout, "Added task %d: %s (%s)\n", task.ID, task.Description, task.Priority.Label())
	return nil
}

// doneCommand marks the first task with the given id as completed.
func (c *cli) doneCommand(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	found, err := store.Complete(id)
	if err != nil {
		return fmt.Errorf("completing task %d: %w", id, err)
	}
	if !found {
		return fmt.Errorf("task %d not found", id)
	}
	fmt.Fprintf(c.stdout, "Completed task %d.\n", id)
	return nil
}

// rmCommand deletes every task with the given id.
func (c *cli) rmCommand(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	existed := false
	for _, t := range store.Tasks() {
		if t.ID == id {
			existed = true
			break
		}
	}
	if err := store.Delete(id); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	if existed {
		fmt.Fprintf(c.stdout, "Deleted task %d.\n", id)
	}
	return nil
}

// lsCommand prints every task in insertion order.
func (c *cli) lsCommand(args []string) error {
	fs := flag.NewFlagSet("tasker ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	verbose := fs.Bool("v", false, "Show creation time")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	list := store.Tasks()
	if len(list) == 0 {
		fmt.Fprintln(c.stdout, "No tasks found.")
		return nil
	}

	theme := ui.ThemeFromConfig(c.cfg.Theme)
	for _, t := range list {
		row := ui.FormatRow(t)
		if *verbose {
			row += "  " + t.CreatedAt
		}
		fmt.Fprintln(c.stdout, theme.Render(t, row))
	}
	return nil
}

// tuiCommand launches the interactive UI.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	return ui.Run(ctx, store, ui.ThemeFromConfig(c.cfg.Theme))
}

// parseID reads the single task id argument. A missing or malformed id
// means no task is selected.
func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrNoSelection
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid task id %q", ErrNoSelection, args[0])
	}
	return id, nil
}
