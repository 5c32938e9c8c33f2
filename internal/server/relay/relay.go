// Package relay forwards a chat message to an external completion service
// and returns the generated text.
package relay

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/dmitrijs2005/promptdesk/internal/logging"
)

// Completer produces a reply for a single user message.
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

type Relay struct {
	completer Completer
	logger    logging.Logger
}

func New(c Completer, l logging.Logger) *Relay {
	return &Relay{completer: c, logger: l.With("module", "relay")}
}

// Reply forwards message verbatim. Empty input is ErrValidation; any
// upstream failure is ErrUpstream with the cause logged, not returned.
func (r *Relay) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: no message found", common.ErrValidation)
	}

	text, err := r.completer.Complete(ctx, message)
	if err != nil {
		r.logger.Error(ctx, "completion failed", "error", err)
		return "", common.ErrUpstream
	}
	return text, nil
}
