package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/dmitrijs2005/promptdesk/internal/client/models"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
)

// OpenPrompts switches to the prompts view and lists saved prompts. Guests
// stay in chat.
func (a *App) OpenPrompts(ctx context.Context) error {
	if !a.session.Authenticated() {
		printlnFn("Sign in to use saved prompts")
		return nil
	}
	if err := a.fire(EventOpenPrompts); err != nil {
		return err
	}
	return a.ListSaved(ctx)
}

func (a *App) OpenChat(ctx context.Context) error {
	return a.fire(EventOpenChat)
}

func (a *App) ListSaved(ctx context.Context) error {
	list, err := a.prompts.ListSaved(ctx, a.session)
	if err != nil {
		return a.promptFailed(ctx, err)
	}
	printPrompts(list, "No saved prompts.")
	return nil
}

func (a *App) ListRecent(ctx context.Context) error {
	list, err := a.prompts.ListRecent(ctx, a.session)
	if err != nil {
		return a.promptFailed(ctx, err)
	}
	printPrompts(list, "No recent prompts.")
	return nil
}

// Toggle flips the saved flag of prompt id.
func (a *App) Toggle(ctx context.Context, id int64) error {
	saved, err := a.prompts.Toggle(ctx, a.session, id)
	if err != nil {
		return a.promptFailed(ctx, err)
	}
	if saved {
		printlnFn(fmt.Sprintf("Prompt #%d saved.", id))
	} else {
		printlnFn(fmt.Sprintf("Prompt #%d removed from saved.", id))
	}
	return nil
}

// promptFailed reports a failed prompt call. A rejected token means the
// stored session expired, so it is dropped and the user signs in again.
func (a *App) promptFailed(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) || !a.session.Authenticated() {
		return a.report(err, "Unauthorized")
	}

	printlnFn("Session expired. Please log in again.")
	if lerr := a.auth.Logout(ctx); lerr != nil {
		_ = a.report(lerr, "")
	}
	a.signedIn(session.Session{})
	if ferr := a.fire(EventLogout); ferr != nil {
		return ferr
	}
	return err
}

func printPrompts(list []*models.Prompt, empty string) {
	if len(list) == 0 {
		printlnFn(empty)
		return
	}
	for _, p := range list {
		mark := " "
		if p.IsSaved {
			mark = "*"
		}
		first, _, _ := strings.Cut(p.Content, "\n")
		printlnFn(fmt.Sprintf("%s #%d  %s  %s", mark, p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), first))
	}
}
