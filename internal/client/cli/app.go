package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/dmitrijs2005/promptdesk/internal/client/format"
	"github.com/dmitrijs2005/promptdesk/internal/client/services"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
)

type App struct {
	api     client.Client
	auth    services.AuthService
	prompts services.PromptService

	session session.Session
	view    View
	conv    *services.Conversation

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the client around an already restored session. An active
// session starts in the chat view; otherwise the user picks how to sign in.
func NewApp(s session.Session, api client.Client, auth services.AuthService, prompts services.PromptService, in io.Reader, out io.Writer) *App {
	var v View = AuthChoice{}
	if s.Active() {
		v = Chat{}
	}
	return &App{
		api:     api,
		auth:    auth,
		prompts: prompts,
		session: s,
		view:    v,
		conv:    services.NewConversation(api),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to PromptDesk (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) currentView() View { return a.view }

func (a *App) getStatus() string {
	switch {
	case a.session.Guest:
		return fmt.Sprintf("(%s guest)", a.view.Name())
	case a.session.Username != "":
		return fmt.Sprintf("(%s %s)", a.view.Name(), a.session.Username)
	default:
		return fmt.Sprintf("(%s)", a.view.Name())
	}
}

func (a *App) fire(e Event) error {
	v, err := Transition(a.view, e)
	if err != nil {
		return err
	}
	a.view = v
	return nil
}

// Back returns from login or register to the auth choice, or from the
// prompts view to chat.
func (a *App) Back(ctx context.Context) error {
	return a.fire(EventBack)
}

// report prints err in user terms and returns it unchanged.
func (a *App) report(err error, fallback string) error {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		printlnFn(apiErr.Message)
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn(fallback)
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server error")
	case errors.Is(err, services.ErrGuest):
		printlnFn("Sign in to use saved prompts")
	default:
		printlnFn(err.Error())
	}
	return err
}

// codeBlocks lists code blocks across every bot reply, in order.
func (a *App) codeBlocks() []format.CodeBlock {
	var out []format.CodeBlock
	for _, t := range a.conv.Turns() {
		if t.Role == services.RoleBot {
			out = append(out, format.CodeBlocks(t.Text)...)
		}
	}
	return out
}
