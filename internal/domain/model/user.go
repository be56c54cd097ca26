package model

// User is persisted with its password hash; user records are never returned
// by the API, only `{message, id}` / `{message, token}` envelopes are.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}
