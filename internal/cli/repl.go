package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

var replCommands = []string{"get ", "search ", "flatten", "keys", "help", "quit"}

// ReplCmd returns the repl command, an interactive inspector for one
// document. Reads from the terminal via liner, so it is not scriptable;
// the other commands cover scripted use.
func ReplCmd(env *Env) *Command {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)
	sep := flags.String("sep", jsondoc.DefaultSeparator, "compound key separator for get/keys")

	return &Command{
		Flags: flags,
		Usage: "repl <file>",
		Short: "Inspect a document interactively",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errFileRequired
			}

			doc, err := loadDoc(env, args[0])
			if err != nil {
				return err
			}

			return runRepl(o, env, doc, *sep)
		},
	}
}

func runRepl(o *IO, env *Env, doc any, sep string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string
		for _, cmd := range replCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}

		return matches
	})

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	flat := jsondoc.Flatten(doc, sep)

	for {
		input, err := line.Prompt("jk> ")
		if err != nil {
			// Ctrl-C / Ctrl-D end the session, not the program.
			if errors.Is(err, liner.ErrPromptAborted) {
				break
			}

			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if input == "quit" || input == "exit" {
			break
		}

		evalRepl(o, env, doc, flat, input)
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}

	return nil
}

func evalRepl(o *IO, env *Env, doc any, flat map[string]any, input string) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "get":
		value, ok := flat[rest]
		if !ok {
			o.Println("(no such key)")

			return
		}

		printReplValue(o, env, value)
	case "search":
		found := jsondoc.SearchKey(doc, rest)
		if found == nil {
			found = []any{}
		}

		printReplValue(o, env, found)
	case "flatten":
		printReplValue(o, env, flat)
	case "keys":
		for _, key := range sortedKeys(flat) {
			o.Println(key)
		}
	case "help":
		o.Println("commands: get <key>, search <key>, flatten, keys, quit")
	default:
		o.Println("unknown command:", cmd, "(try help)")
	}
}

func printReplValue(o *IO, env *Env, value any) {
	err := jsondoc.Fprint(o.Out(), value, env.EncodeOptions())
	if err != nil {
		o.Println("(unprintable value)")
	}
}

func replHistoryPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, ".jk_history")
}
