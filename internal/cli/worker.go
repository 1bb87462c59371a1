package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/procpool"
)

// WorkerCmd returns the hidden worker command, the child side of the
// process-pool protocol. The parent writes tasks to stdin and reads
// replies from stdout; the command exits when stdin closes.
func WorkerCmd(env *Env) *Command {
	return &Command{
		Flags:  flag.NewFlagSet("worker", flag.ContinueOnError),
		Usage:  "worker",
		Short:  "Run as a process-pool worker (internal)",
		Hidden: true,
		Exec: func(o *IO, _ []string) error {
			return procpool.Serve(o.In(), o.Out(), env.FS)
		},
	}
}
