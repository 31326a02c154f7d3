package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands $VAR references and a leading ~ to the home directory.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	rest, ok := strings.CutPrefix(expanded, "~")
	if !ok {
		return expanded
	}
	if rest != "" && !strings.HasPrefix(rest, "/") && !(runtime.GOOS == "windows" && strings.HasPrefix(rest, `\`)) {
		// ~user and ~\ on unix are left alone.
		return expanded
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}
