package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasker configuration file
# Values can be overridden by TASKER_* environment variables or CLI flags

# Task file (relative to the working directory)
tasks_file = "tasks.json"

# Log directory for the activity journal (supports ~ expansion)
log_dir = "~/.tasker"

# Record add/complete/delete in a JSONL journal under log_dir
journal = true

# Console logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false

# Row colors (#rrggbb), chosen by priority; done overrides priority
[theme]
high = "#e74c3c"
medium = "#f39c12"
low = "#2ecc71"
done = "#7f8c8d"
`
}
