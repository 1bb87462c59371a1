package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// MergeCmd returns the merge command.
func MergeCmd(env *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("merge", flag.ContinueOnError),
		Usage: "merge <a> <b>",
		Short: "Shallow-merge two JSON objects, b wins",
		Exec: func(o *IO, args []string) error {
			a, b, err := loadObjectPair(env, args)
			if err != nil {
				return err
			}

			return jsondoc.Fprint(o.Out(), jsondoc.Merge(a, b), env.EncodeOptions())
		},
	}
}

// DiffCmd returns the diff command.
func DiffCmd(env *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("diff", flag.ContinueOnError),
		Usage: "diff <a> <b>",
		Short: "Report top-level keys whose values differ",
		Long: "Print a map from key to {old, new} for every key in either file\n" +
			"whose values differ. A key missing on one side reports null for\n" +
			"that side.",
		Exec: func(o *IO, args []string) error {
			a, b, err := loadObjectPair(env, args)
			if err != nil {
				return err
			}

			return jsondoc.Fprint(o.Out(), jsondoc.Diff(a, b), env.EncodeOptions())
		},
	}
}

func loadObjectPair(env *Env, args []string) (map[string]any, map[string]any, error) {
	if len(args) != 2 {
		return nil, nil, errTwoFilesRequired
	}

	a, err := loadObject(env, args[0])
	if err != nil {
		return nil, nil, err
	}

	b, err := loadObject(env, args[1])
	if err != nil {
		return nil, nil, err
	}

	return a, b, nil
}
