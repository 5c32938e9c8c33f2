package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a recording stub.
type execIface interface {
	currentView() View
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	SwitchTo(ctx context.Context, register bool) error
	Guest(ctx context.Context) error
	Back(ctx context.Context) error
	Logout(ctx context.Context) error
	Send(ctx context.Context, message string) error
	Paste(ctx context.Context) error
	History(ctx context.Context) error
	Save(ctx context.Context, n int) error
	Copy(ctx context.Context, n int) error
	OpenPrompts(ctx context.Context) error
	OpenChat(ctx context.Context) error
	ListSaved(ctx context.Context) error
	ListRecent(ctx context.Context) error
	Toggle(ctx context.Context, id int64) error
}

var errQuit = errors.New("quit")

// runREPL reads lines from reader and dispatches them by the current view
// until EOF, "exit" or "quit". Handler errors are reported by the handlers
// themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("pd %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if errors.Is(dispatch(ctx, a, line), errQuit) {
			printlnFn("Bye!")
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, line string) error {
	switch a.currentView().(type) {
	case Chat:
		if !strings.HasPrefix(line, "/") {
			return a.Send(ctx, line)
		}
		return dispatchChat(ctx, a, strings.Fields(line[1:]))
	case Prompts:
		return dispatchPrompts(ctx, a, strings.Fields(line))
	default:
		return dispatchAuth(ctx, a, strings.Fields(line))
	}
}

func dispatchAuth(ctx context.Context, a execIface, parts []string) error {
	_, choosing := a.currentView().(AuthChoice)
	_, onRegister := a.currentView().(Register)
	_, onLogin := a.currentView().(Login)

	switch parts[0] {
	case "help":
		if choosing {
			printlnFn("Available commands: login, register, guest, exit")
		} else {
			printlnFn("Available commands: login, register, back, exit")
		}
	case "login":
		if onRegister {
			return a.SwitchTo(ctx, false)
		}
		return a.Login(ctx)
	case "register":
		if onLogin {
			return a.SwitchTo(ctx, true)
		}
		return a.Register(ctx)
	case "guest":
		if !choosing {
			break
		}
		return a.Guest(ctx)
	case "back":
		if choosing {
			break
		}
		return a.Back(ctx)
	case "exit", "quit":
		return errQuit
	default:
		printlnFn("Unknown command:", parts[0])
	}
	return nil
}

func dispatchChat(ctx context.Context, a execIface, parts []string) error {
	if len(parts) == 0 {
		printlnFn("Type /help for commands")
		return nil
	}

	switch parts[0] {
	case "help":
		printlnFn("Type a message to chat. Commands: /paste, /history, /save N, /copy N, /prompts, /recent, /logout, /exit")
	case "paste":
		return a.Paste(ctx)
	case "history":
		return a.History(ctx)
	case "save":
		n, ok := intArg(parts, "/save N")
		if !ok {
			return nil
		}
		return a.Save(ctx, n)
	case "copy":
		n, ok := intArg(parts, "/copy N")
		if !ok {
			return nil
		}
		return a.Copy(ctx, n)
	case "prompts":
		return a.OpenPrompts(ctx)
	case "recent":
		return a.ListRecent(ctx)
	case "logout":
		return a.Logout(ctx)
	case "exit", "quit":
		return errQuit
	default:
		printlnFn("Unknown command:", "/"+parts[0])
	}
	return nil
}

func dispatchPrompts(ctx context.Context, a execIface, parts []string) error {
	switch parts[0] {
	case "help":
		printlnFn("Available commands: list, recent, toggle ID, chat, logout, exit")
	case "list", "l":
		return a.ListSaved(ctx)
	case "recent":
		return a.ListRecent(ctx)
	case "toggle":
		n, ok := intArg(parts, "toggle ID")
		if !ok {
			return nil
		}
		return a.Toggle(ctx, int64(n))
	case "chat", "back":
		return a.OpenChat(ctx)
	case "logout":
		return a.Logout(ctx)
	case "exit", "quit":
		return errQuit
	default:
		printlnFn("Unknown command:", parts[0])
	}
	return nil
}

func intArg(parts []string, usage string) (int, bool) {
	if len(parts) < 2 {
		printlnFn("Usage:", usage)
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		printlnFn("Usage:", usage)
		return 0, false
	}
	return n, true
}
