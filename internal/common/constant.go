package common

// GuestToken is the placeholder credential held by guest sessions. It is
// never issued by the server and never verifies.
const GuestToken = "guest-token"

// AuthorizationHeaderName carries "Bearer <token>" on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "
