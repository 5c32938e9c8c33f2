// Package cli is the interactive PromptDesk terminal client.
//
// The client moves between five views (auth choice, login, register, chat
// and saved prompts) through Transition. The REPL reads one line at a time
// and dispatches it according to the current view:
//
//	auth choice:  login | register | guest | exit
//	login:        login | register | back | exit
//	register:     register | login | back | exit
//	chat:         <message> | /paste | /save N | /copy N | /prompts | /recent | /logout | /exit
//	prompts:      list | recent | toggle ID | chat | logout | exit
//
// The session is handed to NewApp by the caller; the App never looks it up
// on its own.
package cli
