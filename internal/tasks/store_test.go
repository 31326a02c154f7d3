package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 1, 2, 9, 30, 15, 0, time.Local)
	return func() time.Time { return at }
}

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	opts = append([]Option{WithClock(fixedClock())}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s, path
}

func readFileTasks(t *testing.T, path string) []Task {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var list []Task
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return list
}

type fakeRecorder struct {
	events []Event
	err    error
}

func (f *fakeRecorder) Record(e Event) error {
	f.events = append(f.events, e)
	return f.err
}

func TestLoadMissingFile(t *testing.T) {
	s, path := newTestStore(t)

	if got := s.Len(); got != 0 {
		t.Errorf("Len: got %d, want 0", got)
	}
	if s.Tasks() == nil {
		t.Error("Tasks: got nil, want empty slice")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Load should not create the file, stat err = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Open(path)
		if err == nil {
			t.Fatal("expected parse error, got nil")
		}
		if !strings.Contains(err.Error(), "parse tasks file") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte(`{"tasks": []}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(path); err == nil {
			t.Fatal("expected error for object document, got nil")
		}
	})

	t.Run("path is a directory", func(t *testing.T) {
		_, err := Open(t.TempDir())
		if err == nil {
			t.Fatal("expected read error, got nil")
		}
		if !strings.Contains(err.Error(), "read tasks file") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("null document is empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte("null"), 0644); err != nil {
			t.Fatal(err)
		}
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("Len: got %d, want 0", s.Len())
		}
	})
}

func TestAdd(t *testing.T) {
	s, path := newTestStore(t)

	task, err := s.Add("Buy milk", PriorityHigh)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	want := Task{
		ID:          1,
		Description: "Buy milk",
		Priority:    PriorityHigh,
		Completed:   false,
		CreatedAt:   "2024-01-02 09:30:15",
	}
	if task != want {
		t.Errorf("Add: got %+v, want %+v", task, want)
	}
	if got := s.Tasks(); len(got) != 1 || got[0] != want {
		t.Errorf("Tasks: got %+v, want [%+v]", got, want)
	}
	if got := readFileTasks(t, path); len(got) != 1 || got[0] != want {
		t.Errorf("file: got %+v, want [%+v]", got, want)
	}
}

func TestAddDoesNotValidate(t *testing.T) {
	s, _ := newTestStore(t)

	task, err := s.Add("", Priority("Urgent"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.Description != "" || task.Priority != "Urgent" {
		t.Errorf("Add should store input as given, got %+v", task)
	}
}

func TestAddSaveFailureKeepsTask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "tasks.json")
	s := NewStore(path, WithClock(fixedClock()))

	if _, err := s.Add("Buy milk", PriorityLow); err == nil {
		t.Fatal("expected write error, got nil")
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestComplete(t *testing.T) {
	t.Run("known id", func(t *testing.T) {
		s, path := newTestStore(t)
		mustAdd(t, s, "first", PriorityLow)
		mustAdd(t, s, "second", PriorityMedium)
		mustAdd(t, s, "third", PriorityHigh)

		ok, err := s.Complete(2)
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if !ok {
			t.Fatal("Complete(2): got false, want true")
		}

		for _, list := range [][]Task{s.Tasks(), readFileTasks(t, path)} {
			for _, task := range list {
				want := task.ID == 2
				if task.Completed != want {
					t.Errorf("task %d completed: got %v, want %v", task.ID, task.Completed, want)
				}
			}
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		s, path := newTestStore(t)
		mustAdd(t, s, "first", PriorityLow)
		before := s.Tasks()

		sentinel := []byte("sentinel")
		if err := os.WriteFile(path, sentinel, 0644); err != nil {
			t.Fatal(err)
		}

		ok, err := s.Complete(42)
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if ok {
			t.Error("Complete(42): got true, want false")
		}
		if !reflect.DeepEqual(s.Tasks(), before) {
			t.Errorf("Tasks changed: got %+v, want %+v", s.Tasks(), before)
		}
		data, _ := os.ReadFile(path)
		if !bytes.Equal(data, sentinel) {
			t.Errorf("file rewritten on unknown id: %q", data)
		}
	})

	t.Run("only first duplicate", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.tasks = []Task{
			{ID: 1, Description: "a", Priority: PriorityLow},
			{ID: 1, Description: "b", Priority: PriorityLow},
		}

		if ok, err := s.Complete(1); err != nil || !ok {
			t.Fatalf("Complete(1): got (%v, %v), want (true, nil)", ok, err)
		}
		got := s.Tasks()
		if !got[0].Completed || got[1].Completed {
			t.Errorf("expected only the first match completed, got %+v", got)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes every match", func(t *testing.T) {
		s, path := newTestStore(t)
		s.tasks = []Task{
			{ID: 1, Description: "a", Priority: PriorityLow},
			{ID: 2, Description: "b", Priority: PriorityMedium},
			{ID: 1, Description: "c", Priority: PriorityHigh},
		}

		if err := s.Delete(1); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		want := []Task{{ID: 2, Description: "b", Priority: PriorityMedium}}
		if !reflect.DeepEqual(s.Tasks(), want) {
			t.Errorf("Tasks: got %+v, want %+v", s.Tasks(), want)
		}
		if got := readFileTasks(t, path); !reflect.DeepEqual(got, want) {
			t.Errorf("file: got %+v, want %+v", got, want)
		}
	})

	t.Run("unknown id still persists", func(t *testing.T) {
		s, path := newTestStore(t)
		mustAdd(t, s, "keep me", PriorityMedium)
		before := s.Tasks()

		if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := s.Delete(99); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if !reflect.DeepEqual(s.Tasks(), before) {
			t.Errorf("Tasks: got %+v, want %+v", s.Tasks(), before)
		}
		if got := readFileTasks(t, path); !reflect.DeepEqual(got, before) {
			t.Errorf("file not rewritten: got %+v, want %+v", got, before)
		}
	})

	t.Run("empty store writes empty array", func(t *testing.T) {
		s, path := newTestStore(t)
		if err := s.Delete(1); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := string(data); got != "[]\n" {
			t.Errorf("file: got %q, want %q", got, "[]\n")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	mustAdd(t, s, "Buy milk", PriorityHigh)
	mustAdd(t, s, "Réserver la salle", PriorityMedium)
	mustAdd(t, s, "Water plants", PriorityLow)
	if _, err := s.Complete(2); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Tasks(), s.Tasks()) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", reloaded.Tasks(), s.Tasks())
	}
}

func TestIDCollisionAfterDelete(t *testing.T) {
	s, path := newTestStore(t)
	mustAdd(t, s, "first", PriorityLow)
	mustAdd(t, s, "second", PriorityLow)

	if err := s.Delete(1); err != nil {
		t.Fatal(err)
	}

	// Reload as a later run would.
	s, err := Open(path, WithClock(fixedClock()))
	if err != nil {
		t.Fatal(err)
	}
	added := mustAdd(t, s, "third", PriorityHigh)

	if added.ID != 2 {
		t.Fatalf("new id: got %d, want 2 (count+1)", added.ID)
	}
	ids := []int{}
	for _, task := range s.Tasks() {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []int{2, 2}) {
		t.Errorf("ids: got %v, want [2 2]", ids)
	}

	// Deleting the shared id removes both tasks.
	if err := s.Delete(2); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("Len after delete: got %d, want 0", s.Len())
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "first", PriorityLow)

	list := s.Tasks()
	list[0].Description = "changed"
	if s.Tasks()[0].Description != "first" {
		t.Error("Tasks should return a copy")
	}
}

func TestRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	s, _ := newTestStore(t, WithRecorder(rec))

	mustAdd(t, s, "first", PriorityLow)
	if _, err := s.Complete(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Complete(7); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(1); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(7); err != nil {
		t.Fatal(err)
	}

	var ops []Op
	for _, e := range rec.events {
		ops = append(ops, e.Op)
	}
	want := []Op{OpAdd, OpComplete, OpDelete}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("ops: got %v, want %v", ops, want)
	}
	if !rec.events[1].Task.Completed {
		t.Error("complete event should carry the completed task")
	}
}

func TestRecorderErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	rec := &fakeRecorder{err: errors.New("disk full")}
	s, _ := newTestStore(t, WithRecorder(rec), WithLogger(logger))

	if _, err := s.Add("first", PriorityLow); err != nil {
		t.Fatalf("recorder failure must not fail Add: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "added task") {
		t.Errorf("expected debug trace, got %q", out)
	}
	if !strings.Contains(out, "disk full") {
		t.Errorf("expected recorder warning, got %q", out)
	}
}

func mustAdd(t *testing.T, s *Store, description string, p Priority) Task {
	t.Helper()
	task, err := s.Add(description, p)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", description, err)
	}
	return task
}
