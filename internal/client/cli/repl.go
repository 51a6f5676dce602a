package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dmitrijs2005/recipes/internal/client/apperror"
)

// availability says in which session state a command is listed by help.
type availability int

const (
	always availability = iota
	signedIn
	signedOut
)

type command struct {
	usage string
	help  string
	when  availability
	run   func(ctx context.Context, args []string) error
}

// repl reads a line from in, parses the first token as the command and
// dispatches to cmds. Errors from handlers are printed and the loop goes on.
// After every command, after runs so navigation requested by the stores
// takes effect.
//
// The prompt shows the current status:
//
//	recipes (chef42)> search pasta
type repl struct {
	in       *bufio.Reader
	out      io.Writer
	cmds     map[string]command
	status   func() string
	loggedIn func() bool
	after    func(context.Context)
}

// run exits on EOF or when the user types "exit" or "quit".
func (r *repl) run(ctx context.Context) {
	for {
		fmt.Fprintf(r.out, "recipes %s> ", r.status())

		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(r.out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(r.out, "Bye!")
			return
		case "help":
			printHelp(r.out, r.cmds, r.loggedIn())
			continue
		}

		cmd, ok := r.cmds[name]
		if !ok {
			fmt.Fprintln(r.out, "Unknown command:", name)
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			printError(r.out, cmd, err)
		}
		if r.after != nil {
			r.after(ctx)
		}
	}
}

func printHelp(w io.Writer, cmds map[string]command, loggedIn bool) {
	names := make([]string, 0, len(cmds))
	for name, c := range cmds {
		if c.when == signedIn && !loggedIn || c.when == signedOut && loggedIn {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintln(w, "Available commands:")
	for _, name := range names {
		c := cmds[name]
		fmt.Fprintf(w, "  %-28s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(w, "  %-28s %s\n", "exit", "leave the program")
}

func printError(w io.Writer, cmd command, err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(w, "Usage:", cmd.usage)
		return
	}
	fmt.Fprintln(w, "Error:", apperror.UserMessage(err))
}

var errUsage = errors.New("usage")
