package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// ShellCmd runs an interactive SQL prompt against the document.
type ShellCmd struct {
	History string `name:"history" type:"path" help:"History file. Defaults to ~/.xrose_history."`
}

func (c *ShellCmd) Run(app *App) error {
	history := c.History
	if history == "" {
		if home, err := os.UserHomeDir(); err == nil {
			history = filepath.Join(home, ".xrose_history")
		}
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "xrose> ",
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Fprintln(app.out, `Enter SQL, ".tables", ".schema <table>", ".layers" or ".quit".`)
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := runShellLine(app, strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(app.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// runShellLine executes one line of shell input and reports whether the
// shell should exit.
func runShellLine(app *App, line string) (bool, error) {
	switch {
	case line == "":
		return false, nil
	case line == ".quit" || line == ".exit":
		return true, nil
	case line == ".tables":
		return false, (&TablesCmd{}).Run(app)
	case line == ".layers":
		return false, (&LayersCmd{}).Run(app)
	case strings.HasPrefix(line, ".schema "):
		return false, (&SchemaCmd{Table: strings.TrimSpace(strings.TrimPrefix(line, ".schema "))}).Run(app)
	case strings.HasPrefix(line, "."):
		return false, fmt.Errorf("unknown command %q", line)
	}
	return false, (&QueryCmd{SQL: line}).Run(app)
}
