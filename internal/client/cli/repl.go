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
	ResetPassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Rename(ctx context.Context, username string) error
	ChangePassword(ctx context.Context) error
	Profile(ctx context.Context, id string) error
	Questions(ctx context.Context) error
	Question(ctx context.Context, id string) error
	Search(ctx context.Context, term string) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Institutes(ctx context.Context) error
	Courses(ctx context.Context, instituteID string) error
	Subjects(ctx context.Context) error
	Contributors(ctx context.Context) error
	Dashboard(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, forgot, exit"
	helpLoggedIn  = "Available commands: questions, question <id>, search <term>, post, edit <id>, institutes, courses [instituteId], " +
		"subjects, contributors, dashboard, profile [id], whoami, rename <username>, passwd, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. Handlers
// report their own errors, so the loop ignores them. It returns on EOF or
// on "exit" / "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("examhub %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !a.isLoggedIn() && needsSession(cmd) {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ResetPassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "rename":
			if len(args) != 1 {
				printlnFn("Usage: rename <username>")
				continue
			}
			_ = a.Rename(ctx, args[0])

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "profile":
			_ = a.Profile(ctx, firstArg(args))

		case "q", "questions":
			_ = a.Questions(ctx)

		case "question":
			if len(args) == 0 {
				printlnFn("Usage: question <id>")
				continue
			}
			_ = a.Question(ctx, args[0])

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "post":
			_ = a.Post(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "institutes":
			_ = a.Institutes(ctx)

		case "courses":
			_ = a.Courses(ctx, firstArg(args))

		case "subjects":
			_ = a.Subjects(ctx)

		case "contributors":
			_ = a.Contributors(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "help", "register", "login", "forgot", "exit", "quit":
		return false
	}
	return true
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
