package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// ValidateCmd returns the validate command.
func ValidateCmd(env *Env) *Command {
	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	lenient := flags.Bool("lenient", false, "accept JSONC (comments, trailing commas)")

	return &Command{
		Flags: flags,
		Usage: "validate <file>...",
		Short: "Check files for well-formed JSON",
		Long: "Report per file whether it contains well-formed JSON.\n" +
			"Exits 1 if any file is invalid or unreadable.",
		Exec: func(o *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			for _, path := range args {
				if validFile(env, path, *lenient) {
					o.Println(path + ": valid")

					continue
				}

				o.Println(path + ": invalid")
				o.Warn("%s is not valid JSON", path)
			}

			return nil
		},
	}
}

func validFile(env *Env, path string, lenient bool) bool {
	if !lenient {
		return jsondoc.ValidFile(env.FS, path)
	}

	data, err := env.FS.ReadFile(path)
	if err != nil {
		return false
	}

	_, err = jsondoc.DecodeLenient(data)

	return err == nil
}
