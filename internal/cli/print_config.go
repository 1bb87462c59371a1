package cli

import flag "github.com/spf13/pflag"

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(env *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(o *IO, _ []string) error {
			formatted, err := FormatConfig(env.Config)
			if err != nil {
				return err
			}

			o.Println(formatted)
			o.Println("")
			o.Println("# Sources:")

			if env.Sources.Global != "" {
				o.Println("#   global:", env.Sources.Global)
			}

			if env.Sources.Project != "" {
				o.Println("#   project:", env.Sources.Project)
			}

			if env.Sources.Global == "" && env.Sources.Project == "" {
				o.Println("#   (using defaults only)")
			}

			return nil
		},
	}
}
