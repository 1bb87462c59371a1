package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// PrettyCmd returns the pretty command.
func PrettyCmd(env *Env) *Command {
	flags := flag.NewFlagSet("pretty", flag.ContinueOnError)
	indent := flags.Int("indent", env.Config.Indent, "spaces per nesting level")
	escape := flags.Bool("escape-html", env.Config.EscapeHTML, "escape <, >, and & in strings")

	return &Command{
		Flags: flags,
		Usage: "pretty <file>",
		Short: "Pretty-print a JSON file",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errFileRequired
			}

			doc, err := loadDoc(env, args[0])
			if err != nil {
				return err
			}

			opts := jsondoc.Options{Indent: *indent, EscapeHTML: *escape}

			return jsondoc.Fprint(o.Out(), doc, opts)
		},
	}
}

// loadDoc reads and decodes a single document, for the non-batch commands
// where a failure is fatal rather than swallowed.
func loadDoc(env *Env, path string) (any, error) {
	data, err := env.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := jsondoc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return doc, nil
}

// loadObject is loadDoc for commands that need a top-level JSON object.
func loadObject(env *Env, path string) (map[string]any, error) {
	doc, err := loadDoc(env, path)
	if err != nil {
		return nil, err
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotAnObject, path)
	}

	return obj, nil
}
