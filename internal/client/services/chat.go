package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one message in a conversation.
type Turn struct {
	Role Role
	Text string
}

var ErrEmptyMessage = errors.New("message is empty")

const genericChatError = "Error: Server error"

// Conversation is an ordered chat transcript. Send calls are serialised so
// each user turn is followed by exactly its own bot turn.
type Conversation struct {
	ID     uuid.UUID
	client client.Client

	sendMu sync.Mutex

	mu    sync.RWMutex
	turns []Turn
}

func NewConversation(c client.Client) *Conversation {
	return &Conversation{ID: uuid.New(), client: c}
}

// Send appends the user turn, which is visible to Turns right away, then
// waits for the completion and appends the bot turn. The bot turn is the
// reply text, "Error: <server message>" when the server answered with an
// error, or "Error: Server error" when it could not be reached or parsed.
func (c *Conversation) Send(ctx context.Context, message string) (Turn, error) {
	if strings.TrimSpace(message) == "" {
		return Turn{}, ErrEmptyMessage
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.append(Turn{Role: RoleUser, Text: message})

	reply, err := c.client.Chat(ctx, message)
	bot := Turn{Role: RoleBot, Text: reply}
	if err != nil {
		bot.Text = errorText(err)
	}
	c.append(bot)
	return bot, nil
}

func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return "Error: " + apiErr.Message
	}
	return genericChatError
}

func (c *Conversation) append(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
}

// Turns returns a copy of the transcript.
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// BotTurn returns the n-th bot reply, counting from 1.
func (c *Conversation) BotTurn(n int) (Turn, bool) {
	return c.nth(RoleBot, n)
}

// UserTurn returns the n-th user message, counting from 1.
func (c *Conversation) UserTurn(n int) (Turn, bool) {
	return c.nth(RoleUser, n)
}

func (c *Conversation) nth(role Role, n int) (Turn, bool) {
	if n < 1 {
		return Turn{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.turns {
		if t.Role != role {
			continue
		}
		n--
		if n == 0 {
			return t, true
		}
	}
	return Turn{}, false
}
