// Package tasks owns the task list and its JSON file.
//
// The task file (tasks.json) is a bare JSON array:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Buy milk",
//	    "priority": "Haute",
//	    "completed": false,
//	    "created_at": "2024-01-01 09:30:00"
//	  }
//	]
//
// # Priority Values
//
//   - "Basse": low
//   - "Moyenne": medium (default)
//   - "Haute": high
//
// # Identifiers
//
// A new task gets id len(tasks)+1. Ids are not reused-safe: after a delete,
// the next add can produce an id that is already taken. Complete acts on the
// first match and Delete removes every match. Existing files depend on this
// numbering, so it is kept as is.
//
// # File Format
//
// Every mutation rewrites the whole file with 2-space indentation and a
// trailing newline. There is no schema version field.
package tasks
