package i

// Authenticator signs operators in and issues access tokens for the training endpoints.
type Authenticator interface {
	// SignIn verifies the operator credentials and returns a signed token.
	SignIn(name, password string) (string, error)
}
