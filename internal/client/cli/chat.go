package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptdesk/internal/client/services"
)

// Send posts message to the relay and prints the reply, followed by an
// index of any code blocks it contains.
func (a *App) Send(ctx context.Context, message string) error {
	before := len(a.codeBlocks())

	bot, err := a.conv.Send(ctx, message)
	if err != nil {
		printlnFn("Type a message to chat.")
		return err
	}

	printlnFn("bot:", bot.Text)

	blocks := a.codeBlocks()
	for i := before; i < len(blocks); i++ {
		lang := blocks[i].Language
		if lang == "" {
			lang = "text"
		}
		printlnFn(fmt.Sprintf("  [code %d: %s, %d lines] /copy %d", i+1, lang, blocks[i].Lines(), i+1))
	}
	return nil
}

// Paste reads a multi-line message and sends it.
func (a *App) Paste(ctx context.Context) error {
	msg, err := GetMultiline(a.reader, "Paste your message", a.out)
	if err != nil {
		return err
	}
	if msg == "" {
		return nil
	}
	return a.Send(ctx, msg)
}

// History prints the transcript with the numbers /save and /copy accept.
func (a *App) History(ctx context.Context) error {
	var you, bot int
	for _, t := range a.conv.Turns() {
		if t.Role == services.RoleUser {
			you++
			printlnFn(fmt.Sprintf("[you %d] %s", you, t.Text))
		} else {
			bot++
			printlnFn(fmt.Sprintf("[bot %d] %s", bot, t.Text))
		}
	}
	if you == 0 {
		printlnFn("No messages yet.")
	}
	return nil
}

// Save stores the n-th message the user sent as a prompt.
func (a *App) Save(ctx context.Context, n int) error {
	turn, ok := a.conv.UserTurn(n)
	if !ok {
		printlnFn(fmt.Sprintf("No message %d.", n))
		return fmt.Errorf("no user message %d", n)
	}

	id, err := a.prompts.Save(ctx, a.session, turn.Text)
	if err != nil {
		return a.promptFailed(ctx, err)
	}
	printlnFn(fmt.Sprintf("Saved prompt #%d.", id))
	return nil
}

// Copy prints the n-th code block raw so it can be selected as-is.
func (a *App) Copy(ctx context.Context, n int) error {
	blocks := a.codeBlocks()
	if n < 1 || n > len(blocks) {
		printlnFn(fmt.Sprintf("No code block %d.", n))
		return fmt.Errorf("no code block %d", n)
	}
	printlnFn(blocks[n-1].Code)
	return nil
}
