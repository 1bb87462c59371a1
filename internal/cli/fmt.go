package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/batch"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// FmtCmd returns the fmt command.
func FmtCmd(env *Env) *Command {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	strategy := flags.String("strategy", strategyGather, "batch strategy: gather, pool, or proc")
	workers := flags.Int("workers", env.Config.Workers, "pool width for the pool and proc strategies")
	indent := flags.Int("indent", env.Config.Indent, "spaces per nesting level")
	escape := flags.Bool("escape-html", env.Config.EscapeHTML, "escape <, >, and & in strings")

	return &Command{
		Flags: flags,
		Usage: "fmt <file>...",
		Short: "Rewrite files with consistent formatting",
		Long: "Batch-load every file, re-encode with the configured formatting,\n" +
			"and atomically write each one back. Files that fail to load or\n" +
			"write are skipped and flagged; the rest are still rewritten.",
		Exec: func(o *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			results, err := batchLoad(env, *strategy, *workers, args)
			if err != nil {
				return err
			}

			entries := make([]batch.Entry, 0, len(args))

			for _, path := range args {
				item := results[path]
				if item.Failed() {
					o.Warn("could not load %s", path)

					continue
				}

				entries = append(entries, batch.Entry{Path: path, Doc: item.Doc})
			}

			opts := jsondoc.Options{Indent: *indent, EscapeHTML: *escape}

			saved, err := batchSave(env, *strategy, *workers, entries, opts)
			if err != nil {
				return err
			}

			written := make(map[string]bool, len(saved))
			for _, path := range saved {
				written[path] = true
			}

			for _, entry := range entries {
				if written[entry.Path] {
					o.Println(entry.Path + ": rewritten")

					continue
				}

				o.Warn("could not write %s", entry.Path)
			}

			return nil
		},
	}
}
