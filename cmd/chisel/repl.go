package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/iw2rmb/chisel/editor"
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
)

const (
	historyFile = ".chisel_history"
	promptMain  = "chisel> "
)

const replHelp = `Lines are replayed through the edit engine as keystrokes.
Commands:
  :tab :stab :enter :bs :del     structural keys
  :left :right :up :down         caret movement
  :home :end                     line movement
  :tokens                        dump the token stream
  :text                          print the rendered text
  :diags                         print engine diagnostics
  :reset                         start over from a blank
  :help                          this text
  :quit                          exit`

// runRepl drives the edit engine from line input: a poor man's keyboard,
// useful for poking at keystroke semantics without a TUI.
func runRepl() int {
	fmt.Printf("chisel %s structural editing REPL\n", versionString)
	fmt.Println("Type :help for commands, :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	g := expr.NewGen()
	e := editor.NewEngine(editor.Config{
		IDs:      g,
		Provider: catalogProvider{},
		Params:   catalogParams,
	})
	tree := expr.Expr(expr.NewBlank(g))
	var cs editor.CursorState

	show := func() {
		fmt.Println(renderWithCaret(e, tree, cs))
	}
	show()

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			fmt.Println()
			return 0
		}
		if line != "" {
			ln.AppendHistory(line)
		}

		if strings.HasPrefix(line, ":") {
			switch strings.TrimSpace(line) {
			case ":quit":
				return 0
			case ":help":
				fmt.Println(replHelp)
			case ":tab":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventTab))
				show()
			case ":stab":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventShiftTab))
				show()
			case ":enter":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventEnter))
				show()
			case ":bs":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventBackspace))
				show()
			case ":del":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventDelete))
				show()
			case ":left":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventLeft))
				show()
			case ":right":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventRight))
				show()
			case ":up":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventUp))
				show()
			case ":down":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventDown))
				show()
			case ":home":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventHome))
				show()
			case ":end":
				tree, cs = e.Dispatch(tree, cs, editor.Key(editor.EventEnd))
				show()
			case ":tokens":
				fmt.Println(e.Stream(tree).DebugString())
			case ":text":
				fmt.Println(e.Stream(tree).Text())
			case ":diags":
				for _, d := range e.Diagnostics() {
					fmt.Println(d)
				}
			case ":reset":
				tree = expr.NewBlank(g)
				cs = editor.CursorState{}
				show()
			default:
				fmt.Println("unknown command. Type :help.")
			}
			continue
		}

		for _, r := range line {
			tree, cs = e.Dispatch(tree, cs, editor.Insert(r))
		}
		show()
	}
}

// renderWithCaret marks the caret with a pipe in the linear text.
func renderWithCaret(e *editor.Engine, tree expr.Expr, cs editor.CursorState) string {
	text := e.Stream(tree).Text()
	var b strings.Builder
	off := 0
	for _, g := range grapheme.Split(text) {
		if off == cs.Caret {
			b.WriteByte('|')
		}
		b.WriteString(g)
		off++
	}
	if cs.Caret >= off {
		b.WriteByte('|')
	}
	return b.String()
}
