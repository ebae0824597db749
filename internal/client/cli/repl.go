package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb.
type command struct {
	name  string
	args  string
	help  string
	auth  bool // requires a logged-in user
	nargs int  // minimum number of arguments
	run   func(ctx context.Context, args []string) error
}

func (c command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

// repl is what runREPL needs from the App; tests provide their own.
type repl struct {
	commands []command
	reader   *bufio.Reader
	out      io.Writer
	loggedIn func(ctx context.Context) bool
	status   func(ctx context.Context) string
	after    func(ctx context.Context)
}

// runREPL starts a simple read–eval–print loop for the clubhub CLI.
//
// It reads a line, parses the first token as the command and dispatches to
// the matching entry of r.commands with the remaining tokens as arguments.
// Errors returned by commands are printed and the loop continues. The loop
// exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, r repl) {
	byName := make(map[string]command, len(r.commands))
	for _, c := range r.commands {
		byName[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(r.out, "clubhub %s> ", r.status(ctx))

		line, err := r.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
			printHelp(r.out, r.commands, r.loggedIn(ctx))
			continue
		}

		c, ok := byName[name]
		switch {
		case !ok:
			fmt.Fprintln(r.out, "Unknown command:", name)
		case c.auth && !r.loggedIn(ctx):
			fmt.Fprintln(r.out, "Please log in first.")
		case len(args) < c.nargs:
			fmt.Fprintln(r.out, "Usage:", c.usage())
		default:
			if err := c.run(ctx, args); err != nil {
				fmt.Fprintln(r.out, describe(err))
			}
		}

		if r.after != nil {
			r.after(ctx)
		}
	}
}

func printHelp(w io.Writer, commands []command, loggedIn bool) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range commands {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(w, "  %-24s %s\n", c.usage(), c.help)
	}
	fmt.Fprintf(w, "  %-24s %s\n", "help", "show this list")
	fmt.Fprintf(w, "  %-24s %s\n", "exit", "leave the program")
}
