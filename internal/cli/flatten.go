package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// FlattenCmd returns the flatten command.
func FlattenCmd(env *Env) *Command {
	flags := flag.NewFlagSet("flatten", flag.ContinueOnError)
	sep := flags.String("sep", jsondoc.DefaultSeparator, "compound key separator")

	return &Command{
		Flags: flags,
		Usage: "flatten <file>",
		Short: "Collapse a nested document to compound keys",
		Long: "Print the document as a single-level object whose keys are the\n" +
			"separator-joined paths to each scalar. List indices become numeric\n" +
			"segments.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errFileRequired
			}

			doc, err := loadDoc(env, args[0])
			if err != nil {
				return err
			}

			return jsondoc.Fprint(o.Out(), jsondoc.Flatten(doc, *sep), env.EncodeOptions())
		},
	}
}

// UnflattenCmd returns the unflatten command.
func UnflattenCmd(env *Env) *Command {
	flags := flag.NewFlagSet("unflatten", flag.ContinueOnError)
	sep := flags.String("sep", jsondoc.DefaultSeparator, "compound key separator")

	return &Command{
		Flags: flags,
		Usage: "unflatten <file>",
		Short: "Rebuild nesting from compound keys",
		Long: "Rebuild a nested object from a flat one by splitting each key on\n" +
			"the separator. Sequences are not reconstructed: numeric segments\n" +
			"become string keys.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errFileRequired
			}

			flat, err := loadObject(env, args[0])
			if err != nil {
				return err
			}

			return jsondoc.Fprint(o.Out(), jsondoc.Unflatten(flat, *sep), env.EncodeOptions())
		},
	}
}
