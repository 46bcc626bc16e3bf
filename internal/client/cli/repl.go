package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the taskkeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Items in commands taking <ref> may be referenced by their list position
// (as printed by "list") or by full id.
//
//	Not logged in:
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - help                 - show available commands
//	  - list | l             - print the item list
//	  - add <title>          - create an item
//	  - done <ref>           - mark an item completed
//	  - undo <ref>           - mark an item not completed
//	  - rename <ref> <title> - change an item's title
//	  - rm <ref>             - delete an item
//	  - refresh              - reload the list from the server
//	  - logout               - log out
//	  - exit | quit          - leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, done, undo, rename, rm, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "done":
			if len(args) == 0 {
				printlnFn("Usage: done <ref>")
				continue
			}
			_ = a.Done(ctx, args)

		case "undo":
			if len(args) == 0 {
				printlnFn("Usage: undo <ref>")
				continue
			}
			_ = a.Undo(ctx, args)

		case "rename":
			if len(args) < 2 {
				printlnFn("Usage: rename <ref> <title>")
				continue
			}
			_ = a.Rename(ctx, args)

		case "rm":
			if len(args) == 0 {
				printlnFn("Usage: rm <ref>")
				continue
			}
			_ = a.Remove(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
