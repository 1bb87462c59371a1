package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/calvinalkan/jsonkit/pkg/batch"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
	"github.com/calvinalkan/jsonkit/pkg/procpool"
)

// Batch strategy names, selected per call with --strategy.
const (
	strategyGather = "gather" // one goroutine per item, unbounded
	strategyPool   = "pool"   // bounded worker goroutines
	strategyProc   = "proc"   // bounded worker processes
)

func (e *Env) batchConfig(workers int, encode jsondoc.Options) batch.Config {
	return batch.Config{
		Workers: workers,
		Encode:  encode,
		FS:      e.FS,
		Logger:  e.Logger,
	}
}

func (e *Env) procOptions(workers int, encode jsondoc.Options) procpool.Options {
	return procpool.Options{
		Workers: workers,
		Encode:  encode,
		Logger:  e.Logger,
	}
}

// batchLoad runs a batch load with the named strategy. The returned error
// is only ever a setup failure (unknown strategy, worker spawn); per-item
// failures are inside the map.
func batchLoad(env *Env, strategy string, workers int, paths []string) (map[string]batch.Item, error) {
	switch strategy {
	case strategyGather:
		return batch.Load(paths, env.batchConfig(workers, jsondoc.Options{})), nil
	case strategyPool:
		return batch.LoadPool(paths, env.batchConfig(workers, jsondoc.Options{})), nil
	case strategyProc:
		return procpool.Load(paths, env.procOptions(workers, jsondoc.Options{}))
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownStrategy, strategy)
	}
}

// batchSave runs a batch save with the named strategy. Same error contract
// as batchLoad; failed entries are silently absent from the success list.
func batchSave(env *Env, strategy string, workers int, entries []batch.Entry, encode jsondoc.Options) ([]string, error) {
	switch strategy {
	case strategyGather:
		return batch.Save(entries, env.batchConfig(workers, encode)), nil
	case strategyPool:
		return batch.SavePool(entries, env.batchConfig(workers, encode)), nil
	case strategyProc:
		return procpool.Save(entries, env.procOptions(workers, encode))
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownStrategy, strategy)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)

	return keys
}

// reportLoad prints per-path outcomes in input order and warns per failure.
func reportLoad(o *IO, paths []string, results map[string]batch.Item) {
	for _, path := range paths {
		item := results[path]
		if item.Failed() {
			o.Println(path + ": failed")
			o.Warn("could not load %s", path)

			continue
		}

		o.Println(path + ": ok")
	}
}
