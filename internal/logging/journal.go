package logging

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nibzard/tasker-go/internal/tasks"
)

// Entry is one line of the activity journal.
type Entry struct {
	EventID     string    `json:"event_id"`
	Time        time.Time `json:"time"`
	Op          string    `json:"op"`
	TaskID      int       `json:"task_id"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
}

// Journal appends task events to a per-project JSONL file.
// It implements tasks.Recorder.
type Journal struct {
	Path string
}

// JournalPath returns the journal file for workDir without creating it.
func JournalPath(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}

	resolvedWorkDir := workDir
	if resolvedWorkDir == "" {
		resolvedWorkDir = "."
	}
	if abs, err := filepath.Abs(resolvedWorkDir); err == nil {
		resolvedWorkDir = abs
	}

	baseDir = resolveBaseDir(baseDir, resolvedWorkDir)
	projectRoot := resolveProjectRoot(resolvedWorkDir)
	return filepath.Join(baseDir, projectSlug(projectRoot)+".jsonl"), nil
}

// OpenJournal resolves the journal path. Record creates its directory.
func OpenJournal(baseDir, workDir string) (*Journal, error) {
	path, err := JournalPath(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	return &Journal{Path: path}, nil
}

// Record appends one entry for the event.
func (j *Journal) Record(e tasks.Event) error {
	entry := Entry{
		EventID:     uuid.NewString(),
		Time:        e.At.UTC(),
		Op:          string(e.Op),
		TaskID:      e.Task.ID,
		Description: e.Task.Description,
		Priority:    string(e.Task.Priority),
		Completed:   e.Task.Completed,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	line = append(line, '\n')

	if err := os.MkdirAll(filepath.Dir(j.Path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	return f.Close()
}

// ReadJournal returns the last n entries of the journal, oldest first.
// n <= 0 returns every entry. A missing journal has no entries.
func ReadJournal(path string, n int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var entries []Entry
	reader := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read journal: %w", readErr)
		}
		if len(raw) > 0 {
			lineNo++
			line := bytes.TrimSpace(raw)
			if len(line) > 0 {
				var entry Entry
				if err := json.Unmarshal(line, &entry); err != nil {
					return nil, fmt.Errorf("parse journal line %d: %w", lineNo, err)
				}
				entries = append(entries, entry)
				if n > 0 && len(entries) > n {
					entries = entries[1:]
				}
			}
		}
		if readErr != nil {
			break
		}
	}
	return entries, nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

// resolveProjectRoot prefers the enclosing git toplevel so that every
// subdirectory of a repository shares one journal.
func resolveProjectRoot(workDir string) string {
	if _, err := exec.LookPath("git"); err == nil {
		cmd := exec.Command("git", "-C", workDir, "rev-parse", "--show-toplevel")
		if output, err := cmd.Output(); err == nil {
			if root := strings.TrimSpace(string(output)); root != "" {
				return root
			}
		}
	}
	return workDir
}

func projectSlug(projectRoot string) string {
	return fmt.Sprintf("%s-%s", slugify(filepath.Base(projectRoot)), hashPath(projectRoot))
}

func slugify(input string) string {
	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_.")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}
