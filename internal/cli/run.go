package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/jsonkit/internal/fs"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

const helpFlag = "--help"

// Env carries the resolved configuration and shared collaborators into
// every command.
type Env struct {
	Config  Config
	Sources ConfigSources
	FS      fs.FS
	Logger  *log.Logger
	WorkDir string
}

// EncodeOptions returns the encoder options the config resolves to.
func (e *Env) EncodeOptions() jsondoc.Options {
	return jsondoc.Options{Indent: e.Config.Indent, EscapeHTML: e.Config.EscapeHTML}
}

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	cfg, sources, err := LoadConfig(workDir, flags.configPath, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	logger := log.NewWithOptions(errOut, log.Options{ReportTimestamp: false})
	if flags.verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	cmdEnv := &Env{
		Config:  cfg,
		Sources: sources,
		FS:      fs.NewReal(),
		Logger:  logger,
		WorkDir: workDir,
	}

	registry := commands(cmdEnv)

	if len(flags.remaining) == 0 {
		printUsage(out, registry)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(out, registry)

		return 0
	}

	for _, cmd := range registry {
		if cmd.Name() == name {
			o := NewIO(in, out, errOut)

			return cmd.Run(o, flags.remaining[1:])
		}
	}

	fprintln(errOut, "error: unknown command:", name)
	printUsage(errOut, registry)

	return 1
}

func commands(env *Env) []*Command {
	return []*Command{
		ValidateCmd(env),
		PrettyCmd(env),
		FmtCmd(env),
		FlattenCmd(env),
		UnflattenCmd(env),
		MergeCmd(env),
		DiffCmd(env),
		SearchCmd(env),
		LoadCmd(env),
		LoadDirCmd(env),
		ReplCmd(env),
		WorkerCmd(env),
		PrintConfigCmd(env),
	}
}

type globalFlags struct {
	workDir    string
	configPath string
	verbose    bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		arg := args[idx]

		switch {
		case (arg == "-C" || arg == "--cwd") && idx+1 < len(args):
			flags.workDir = args[idx+1]
			idx += 2
		case strings.HasPrefix(arg, "--cwd="):
			flags.workDir = strings.TrimPrefix(arg, "--cwd=")
			idx++
		case (arg == "-c" || arg == "--config") && idx+1 < len(args):
			flags.configPath = args[idx+1]
			idx += 2
		case strings.HasPrefix(arg, "--config="):
			flags.configPath = strings.TrimPrefix(arg, "--config=")
			idx++
		case arg == "-v" || arg == "--verbose":
			flags.verbose = true
			idx++
		case arg == "-h" || arg == helpFlag:
			flags.remaining = []string{helpFlag}

			return flags, nil
		case strings.HasPrefix(arg, "-") && arg != "-":
			return globalFlags{}, fmt.Errorf("unknown flag: %s", arg)
		default:
			flags.remaining = args[idx:]

			return flags, nil
		}
	}

	return flags, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, registry []*Command) {
	fprintln(w, `jk - JSON file toolkit

Usage: jk [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  -v, --verbose      Log swallowed per-item failures

Commands:`)

	for _, cmd := range registry {
		if cmd.Hidden {
			continue
		}

		fprintln(w, cmd.HelpLine())
	}
}
