package models

// Literal bodies returned by /api/users/login
const (
	LoginSuccessful    = "Login successful"
	InvalidCredentials = "Invalid credentials"
)

// LoginMessage maps the login outcome to its response body
func LoginMessage(ok bool) string {
	if ok {
		return LoginSuccessful
	}
	return InvalidCredentials
}
