package batch

import "sync"

// Load reads and decodes every path concurrently, one goroutine per path,
// and returns a map with exactly one [Item] per input path.
//
// All items launch together and Load returns only when every item has
// finished; no partial result is visible early. Fan-out width is unbounded,
// the caller controls it by the size of paths. Internally results are
// gathered in input order and zipped with the paths; the returned map is
// keyed by path, so consumers must not depend on any order.
func Load(paths []string, cfg Config) map[string]Item {
	fsys := cfg.fsys()
	items := make([]Item, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)

		go func() {
			defer wg.Done()

			doc, err := loadFile(fsys, path)
			if err != nil {
				cfg.logFailure("load", path, err)
				items[i] = Item{Err: err}

				return
			}

			items[i] = Item{Doc: doc}
		}()
	}

	wg.Wait()

	results := make(map[string]Item, len(paths))
	for i, path := range paths {
		results[path] = items[i]
	}

	return results
}

// Save encodes and writes every entry concurrently, one goroutine per
// entry, and returns the paths that were written, in input order.
//
// Failed entries are dropped from the result without further report; set
// [Config.Logger] for diagnostics.
func Save(entries []Entry, cfg Config) []string {
	fsys := cfg.fsys()
	ok := make([]bool, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := saveFile(fsys, entry, cfg.Encode)
			if err != nil {
				cfg.logFailure("save", entry.Path, err)

				return
			}

			ok[i] = true
		}()
	}

	wg.Wait()

	saved := make([]string, 0, len(entries))
	for i, entry := range entries {
		if ok[i] {
			saved = append(saved, entry.Path)
		}
	}

	return saved
}
