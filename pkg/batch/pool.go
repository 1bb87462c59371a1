package batch

import "sync"

// LoadPool reads and decodes every path on a bounded pool of worker
// goroutines (Config.Workers wide, [DefaultWorkers] if unset). Excess paths
// queue until a worker frees up.
//
// Results are collected in completion order and re-keyed by path, so the
// returned map has exactly one [Item] per input path regardless of which
// worker finished first.
func LoadPool(paths []string, cfg Config) map[string]Item {
	fsys := cfg.fsys()

	type keyed struct {
		path string
		item Item
	}

	jobs := make(chan string)
	completed := make(chan keyed)

	var wg sync.WaitGroup
	for range min(cfg.workers(), len(paths)) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for path := range jobs {
				doc, err := loadFile(fsys, path)
				if err != nil {
					cfg.logFailure("load", path, err)
					completed <- keyed{path: path, item: Item{Err: err}}

					continue
				}

				completed <- keyed{path: path, item: Item{Doc: doc}}
			}
		}()
	}

	go func() {
		for _, path := range paths {
			jobs <- path
		}

		close(jobs)
		wg.Wait()
		close(completed)
	}()

	results := make(map[string]Item, len(paths))
	for res := range completed {
		results[res.path] = res.item
	}

	return results
}

// SavePool encodes and writes every entry on a bounded pool of worker
// goroutines and returns the paths that were written.
//
// The success list is in completion order, not input order — an accepted
// nondeterminism of the pool strategy. Failed entries are dropped from the
// result without further report.
func SavePool(entries []Entry, cfg Config) []string {
	fsys := cfg.fsys()

	jobs := make(chan Entry)
	completed := make(chan string)

	var wg sync.WaitGroup
	for range min(cfg.workers(), len(entries)) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for entry := range jobs {
				err := saveFile(fsys, entry, cfg.Encode)
				if err != nil {
					cfg.logFailure("save", entry.Path, err)

					continue
				}

				completed <- entry.Path
			}
		}()
	}

	go func() {
		for _, entry := range entries {
			jobs <- entry
		}

		close(jobs)
		wg.Wait()
		close(completed)
	}()

	saved := make([]string, 0, len(entries))
	for path := range completed {
		saved = append(saved, path)
	}

	return saved
}
