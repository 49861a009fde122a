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
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, route string) error
	List(ctx context.Context) error
	Search(ctx context.Context) error
	Write(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL reads commands from reader and dispatches them to a.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help             show available commands
//	  - go <route>       navigate to a route
//	  - whoami           show the current user
//	  - exit | quit      leave the program
//
//	Not logged in:
//	  - register         create an account
//	  - login            authenticate
//
//	Logged in:
//	  - (l)ist           list own diaries
//	  - search           search own diaries
//	  - write            write a new diary
//	  - edit <id>        edit a diary
//	  - delete <id>      delete a diary
//	  - logout           log out
//
// Protected commands are still dispatched when logged out; the guard
// decides and redirects. Handler errors are reported by the handlers
// themselves. The loop exits on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("diary %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, write, edit <id>, delete <id>, go <route>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, go <route>, whoami, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <route>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx)

		case "write":
			_ = a.Write(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
