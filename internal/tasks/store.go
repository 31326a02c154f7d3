package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Op names a store mutation.
type Op string

const (
	OpAdd      Op = "add"
	OpComplete Op = "complete"
	OpDelete   Op = "delete"
)

// Event describes a persisted mutation.
type Event struct {
	Op   Op
	Task Task
	At   time.Time
}

// Recorder receives an Event after every successful mutation.
type Recorder interface {
	Record(Event) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger enables debug traces of store mutations.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRecorder attaches an activity recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// Store holds the ordered task list and keeps it in sync with a file.
// A Store is not safe for concurrent use.
type Store struct {
	path     string
	tasks    []Task
	now      func() time.Time
	logger   *log.Logger
	recorder Recorder
}

// NewStore returns an empty store backed by path. Call Load to read it.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		tasks: []Task{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads it from path.
func Open(path string, opts ...Option) (*Store, error) {
	s := NewStore(path, opts...)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the file contents.
// A missing file yields an empty list.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.tasks = []Task{}
			s.debug("tasks file not found, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("read tasks file: %w", err)
	}

	var loaded []Task
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse tasks file: %w", err)
	}
	if loaded == nil {
		loaded = []Task{}
	}
	s.tasks = loaded
	s.debug("loaded tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// Save overwrites the file with the full task list.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}

// Add appends a new pending task and persists the list.
// The id is the current task count plus one.
func (s *Store) Add(description string, priority Priority) (Task, error) {
	task := Task{
		ID:          len(s.tasks) + 1,
		Description: description,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   s.now().Format(TimeLayout),
	}
	s.tasks = append(s.tasks, task)
	if err := s.Save(); err != nil {
		return task, err
	}
	s.debug("added task", "id", task.ID, "priority", task.Priority)
	s.record(OpAdd, task)
	return task, nil
}

// Complete marks the first task with id as completed and persists.
// It reports false, without writing, when no task has that id.
func (s *Store) Complete(id int) (bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Completed = true
		if err := s.Save(); err != nil {
			return true, err
		}
		s.debug("completed task", "id", id)
		s.record(OpComplete, s.tasks[i])
		return true, nil
	}
	s.debug("complete: no such task", "id", id)
	return false, nil
}

// Delete removes every task with id and persists, even if none matched.
func (s *Store) Delete(id int) error {
	kept := make([]Task, 0, len(s.tasks))
	var removed []Task
	for _, t := range s.tasks {
		if t.ID == id {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if err := s.Save(); err != nil {
		return err
	}
	s.debug("deleted tasks", "id", id, "removed", len(removed))
	for _, t := range removed {
		s.record(OpDelete, t)
	}
	return nil
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) record(op Op, t Task) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(Event{Op: op, Task: t, At: s.now()}); err != nil && s.logger != nil {
		s.logger.Warn("recording task event", "op", op, "id", t.ID, "err", err)
	}
}

func (s *Store) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}
