package batch

import (
	"os"
	"path/filepath"
)

const jsonPattern = "*.json"

type scanFrame struct {
	dir     string
	entries []os.DirEntry
}

// LoadDir enumerates the *.json files in dir (including subdirectories when
// recursive is true) and batch-loads them with [Load].
//
// Enumeration failure of dir itself propagates; an unreadable subdirectory
// during a recursive walk is skipped and debug-logged, matching the
// per-item failure policy.
func LoadDir(dir string, recursive bool, cfg Config) (map[string]Item, error) {
	paths, err := scanDir(dir, recursive, cfg)
	if err != nil {
		return nil, err
	}

	return Load(paths, cfg), nil
}

// scanDir walks with an explicit directory stack; deeply nested trees must
// not exhaust the call stack any more than deep documents do.
func scanDir(dir string, recursive bool, cfg Config) ([]string, error) {
	fsys := cfg.fsys()

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string

	stack := []scanFrame{{dir: dir, entries: entries}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, entry := range frame.entries {
			full := filepath.Join(frame.dir, entry.Name())

			if entry.IsDir() {
				if !recursive {
					continue
				}

				children, readErr := fsys.ReadDir(full)
				if readErr != nil {
					cfg.logFailure("scan", full, readErr)

					continue
				}

				stack = append(stack, scanFrame{dir: full, entries: children})

				continue
			}

			if matched, _ := filepath.Match(jsonPattern, entry.Name()); matched {
				paths = append(paths, full)
			}
		}
	}

	return paths, nil
}
