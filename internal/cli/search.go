package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// SearchCmd returns the search command.
func SearchCmd(env *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("search", flag.ContinueOnError),
		Usage: "search <file> <key>",
		Short: "Find every value stored under a key, at any depth",
		Long: "Walk the whole document and print a JSON array of every value\n" +
			"whose enclosing object has the given key. Discovery order is\n" +
			"unspecified.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 2 {
				return errKeyRequired
			}

			doc, err := loadDoc(env, args[0])
			if err != nil {
				return err
			}

			found := jsondoc.SearchKey(doc, args[1])
			if found == nil {
				found = []any{}
			}

			return jsondoc.Fprint(o.Out(), found, env.EncodeOptions())
		},
	}
}
