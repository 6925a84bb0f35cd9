package domain

// User is the authenticated remote account.
type User struct {
	ID       int64
	Username string
	FullName string
}

// Auth is the result of the token handshake: a token, the permission level
// it was granted with, and the user it belongs to.
type Auth struct {
	Token string
	Perms string
	User  User
}
