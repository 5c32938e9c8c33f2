package httpapi

import (
	"net/http"
	"time"
)

type debugUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type debugUsersResponse struct {
	Users []debugUser `json:"users"`
}

// handleDebugUsers lists accounts for local troubleshooting. The route is
// only mounted when debug endpoints are enabled.
func (a *API) handleDebugUsers(w http.ResponseWriter, r *http.Request) {
	list, err := a.users.ListUsers(r.Context())
	if err != nil {
		a.internalError(w, r, "list users failed", err)
		return
	}

	out := debugUsersResponse{Users: make([]debugUser, 0, len(list))}
	for _, u := range list {
		out.Users = append(out.Users, debugUser{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}
