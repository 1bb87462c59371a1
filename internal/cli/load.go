package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/batch"
)

// LoadCmd returns the load command.
func LoadCmd(env *Env) *Command {
	flags := flag.NewFlagSet("load", flag.ContinueOnError)
	strategy := flags.String("strategy", strategyGather, "batch strategy: gather, pool, or proc")
	workers := flags.Int("workers", env.Config.Workers, "pool width for the pool and proc strategies")

	return &Command{
		Flags: flags,
		Usage: "load <file>...",
		Short: "Batch-load files and report per-path outcome",
		Long: "Load every file concurrently with the chosen strategy and report\n" +
			"ok or failed per path. A failed item never aborts its siblings;\n" +
			"any failure turns the exit code to 1.",
		Exec: func(o *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			results, err := batchLoad(env, *strategy, *workers, args)
			if err != nil {
				return err
			}

			reportLoad(o, args, results)

			return nil
		},
	}
}

// LoadDirCmd returns the load-dir command.
func LoadDirCmd(env *Env) *Command {
	flags := flag.NewFlagSet("load-dir", flag.ContinueOnError)
	recursive := flags.BoolP("recursive", "r", true, "include subdirectories")

	return &Command{
		Flags: flags,
		Usage: "load-dir <dir>",
		Short: "Batch-load every *.json file in a directory",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errDirRequired
			}

			dir := args[0]

			results, err := batch.LoadDir(dir, *recursive, env.batchConfig(env.Config.Workers, env.EncodeOptions()))
			if err != nil {
				return err
			}

			// Stable report order for a map-shaped result.
			paths := sortedKeys(results)
			reportLoad(o, paths, results)

			return nil
		},
	}
}
