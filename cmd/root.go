// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/tasks"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	// ErrEmptyDescription is returned by add when the description is blank.
	ErrEmptyDescription = errors.New("please enter a task description")
	// ErrNoSelection is returned when a command needs a task id and none
	// usable was given.
	ErrNoSelection = errors.New("select a task first")
)

// cli carries the resolved config and output streams for one invocation.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Run executes the tasker CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c := &cli{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: logging.NewConsoleLoggerFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// With no command, or a flag where the command should be, list tasks.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return c.addCommand(remainingArgs)
	case "done":
		return c.doneCommand(remainingArgs)
	case "rm":
		return c.rmCommand(remainingArgs)
	case "ls":
		return c.lsCommand(remainingArgs)
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "export":
		return c.exportCommand(remainingArgs)
	case "doctor":
		return c.doctorCommand(remainingArgs)
	case "history":
		return c.historyCommand(remainingArgs)
	case "config":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	case "version", "--version":
		return c.versionCommand()
	case "help", "--help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore loads the configured task file, with the activity journal
// attached when enabled.
func (c *cli) openStore() (*tasks.Store, error) {
	opts := []tasks.Option{tasks.WithLogger(c.logger)}
	if c.cfg.Journal {
		journal, err := logging.OpenJournal(c.cfg.LogDir, c.cfg.ProjectRoot)
		if err != nil {
			c.logger.Warn("journal disabled", "err", err)
		} else {
			opts = append(opts, tasks.WithRecorder(journal))
		}
	}
	store, err := tasks.Open(c.cfg.TasksFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	return store, nil
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.stdout, "tasker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasker - A minimal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls              List tasks (default command)")
	fmt.Fprintln(w, "  add <text>      Add a task")
	fmt.Fprintln(w, "  done <id>       Mark a task as completed")
	fmt.Fprintln(w, "  rm <id>         Delete a task")
	fmt.Fprintln(w, "  tui             Launch terminal UI")
	fmt.Fprintln(w, "  export          Export tasks as json, yaml, csv or pdf")
	fmt.Fprintln(w, "  doctor          Check config and task file validity")
	fmt.Fprintln(w, "  history         Show recent task activity")
	fmt.Fprintln(w, "  config          Print an example tasker.toml")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -p string")
	fmt.Fprintln(w, "        Priority (low|medium|high) (default \"medium\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -v    Show creation time")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|yaml|csv|pdf) (default \"json\")")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (required for pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History Options:")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of entries to show (default 20)")
}
