package models

// TokenPair is what the login and refresh endpoints return.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RefreshRequest is the refresh endpoint request body.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
