package cli

import (
	"errors"
	"fmt"
)

// View is one screen of the client. The set is closed: AuthChoice, Login,
// Register, Chat and Prompts.
type View interface {
	Name() string
	isView()
}

type (
	AuthChoice struct{}
	Login      struct{}
	Register   struct{}
	Chat       struct{}
	Prompts    struct{}
)

func (AuthChoice) Name() string { return "auth" }
func (Login) Name() string      { return "login" }
func (Register) Name() string   { return "register" }
func (Chat) Name() string       { return "chat" }
func (Prompts) Name() string    { return "prompts" }

func (AuthChoice) isView() {}
func (Login) isView()      {}
func (Register) isView()   {}
func (Chat) isView()       {}
func (Prompts) isView()    {}

type Event string

const (
	EventChooseLogin    Event = "choose-login"
	EventChooseRegister Event = "choose-register"
	EventChooseGuest    Event = "choose-guest"
	EventAuthenticated  Event = "authenticated"
	EventBack           Event = "back"
	EventOpenPrompts    Event = "open-prompts"
	EventOpenChat       Event = "open-chat"
	EventLogout         Event = "logout"
)

var ErrIllegalTransition = errors.New("illegal view transition")

// Transition returns the view that follows v on event e.
func Transition(v View, e Event) (View, error) {
	switch v.(type) {
	case AuthChoice:
		switch e {
		case EventChooseLogin:
			return Login{}, nil
		case EventChooseRegister:
			return Register{}, nil
		case EventChooseGuest:
			return Chat{}, nil
		}
	case Login:
		switch e {
		case EventAuthenticated:
			return Chat{}, nil
		case EventChooseRegister:
			return Register{}, nil
		case EventBack:
			return AuthChoice{}, nil
		}
	case Register:
		switch e {
		case EventAuthenticated:
			return Chat{}, nil
		case EventChooseLogin:
			return Login{}, nil
		case EventBack:
			return AuthChoice{}, nil
		}
	case Chat:
		switch e {
		case EventOpenPrompts:
			return Prompts{}, nil
		case EventLogout:
			return AuthChoice{}, nil
		}
	case Prompts:
		switch e {
		case EventOpenChat, EventBack:
			return Chat{}, nil
		case EventLogout:
			return AuthChoice{}, nil
		}
	}
	return v, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, e, viewName(v))
}

func viewName(v View) string {
	if v == nil {
		return "<nil>"
	}
	return v.Name()
}
