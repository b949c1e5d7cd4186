package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sidquark/minikv/internal/database"
	"github.com/sidquark/minikv/internal/log"
	"github.com/spf13/cobra"
)

func DefineShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "shell",
		Short:        "Start an interactive session",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	in := cmd.InOrStdin()
	sh := NewShell(a.db, in, cmd.OutOrStdout())
	if isTerminal(in) {
		sh.Prompt = AppName + "> "
		fmt.Fprintln(sh.out, "MiniKV interactive shell")
		fmt.Fprintln(sh.out, "Type 'help' for available commands.")
	}
	return sh.Run()
}

// isTerminal reports whether r is a terminal, in which case the shell
// prints a banner and a prompt.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Shell is a line-oriented command loop over a database.
type Shell struct {
	db     *database.DB
	in     io.Reader
	out    io.Writer
	Prompt string
}

func NewShell(db *database.DB, in io.Reader, out io.Writer) *Shell {
	return &Shell{db: db, in: in, out: out}
}

// Run reads commands until quit, exit or end of input.
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprint(s.out, s.Prompt)
		if !scanner.Scan() {
			break
		}

		if quit := s.Execute(scanner.Text()); quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}
	return nil
}

// Execute runs a single command line and reports whether the shell should
// stop.
func (s *Shell) Execute(line string) bool {
	command, rest := nextToken(line)
	if command == "" {
		return false
	}

	log.Shell.Debug().Str("command", command).Msg("executing")

	switch strings.ToLower(command) {
	case "quit", "exit":
		return true

	case "help":
		s.printHelp()

	case "put":
		key, value := nextToken(rest)
		if key == "" {
			fmt.Fprintln(s.out, "Usage: put <key> <value>")
			return false
		}
		s.report(s.db.Put(key, strings.TrimLeft(value, " \t")))

	case "get":
		key, _ := nextToken(rest)
		if key == "" {
			fmt.Fprintln(s.out, "Usage: get <key>")
			return false
		}
		value, err := s.db.Get(key)
		switch {
		case errors.Is(err, database.ErrKeyNotFound):
			fmt.Fprintln(s.out, "(nil)")
		case err != nil:
			s.reportFailure(err)
		default:
			fmt.Fprintln(s.out, value)
		}

	case "del":
		key, _ := nextToken(rest)
		if key == "" {
			fmt.Fprintln(s.out, "Usage: del <key>")
			return false
		}
		s.report(s.db.Delete(key))

	case "save":
		path, _ := nextToken(rest)
		s.report(s.db.Save(path))

	case "load":
		path, _ := nextToken(rest)
		s.report(s.db.Load(path))

	case "list":
		arg, _ := nextToken(rest)
		if arg == "" {
			s.reportFailure(s.db.List(s.out))
			return false
		}
		order, err := database.ParseSortOrder(arg)
		if err != nil || !strings.HasPrefix(arg, "-") {
			fmt.Fprintf(s.out, "Unknown list option: %s\n", arg)
			fmt.Fprintln(s.out, "Usage: list [-asc|-desc]")
			return false
		}
		s.reportFailure(s.db.ListSorted(s.out, order))

	case "count":
		fmt.Fprintf(s.out, "%d\n", s.db.Count())

	default:
		fmt.Fprintf(s.out, "Unknown command: %s. Type 'help' for available commands.\n", command)
	}
	return false
}

// report prints OK for a nil error and the error message otherwise.
func (s *Shell) report(err error) {
	if err != nil {
		s.reportFailure(err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

func (s *Shell) reportFailure(err error) {
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Available commands:")
	fmt.Fprintln(s.out, "  get <key>            - Retrieve a value by key")
	fmt.Fprintln(s.out, "  put <key> <value>    - Store a key-value pair")
	fmt.Fprintln(s.out, "  del <key>            - Remove a key-value pair")
	fmt.Fprintln(s.out, "  save [file]          - Save all entries to a file")
	fmt.Fprintln(s.out, "  load [file]          - Replace all entries with a file's contents")
	fmt.Fprintln(s.out, "  list [-asc|-desc]    - List entries, optionally sorted by key")
	fmt.Fprintln(s.out, "  count                - Show the number of entries")
	fmt.Fprintln(s.out, "  help                 - Show this help")
	fmt.Fprintln(s.out, "  quit / exit          - Exit the shell")
}

// nextToken splits off the first whitespace-delimited token of s.
// rest starts right after the single separator following the token.
func nextToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
