package identity

// AuthRequest is the operator login body.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued access token.
type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
