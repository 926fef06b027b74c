package models

// Session is the locally persisted login state. Empty strings mean absent.
type Session struct {
	Token     string
	UserEmail string
}

// Authenticated reports whether a token is present. It says nothing about the
// token being accepted by the server.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// User is the account description returned by the auth endpoints.
type User struct {
	Email string `json:"email"`
}
