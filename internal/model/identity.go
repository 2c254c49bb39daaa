package model

// Identity is the authenticated caller decoded from a bearer token.
type Identity struct {
	ID       int64
	Username string
}
