package model

// TokenPair is what a successful login or refresh returns to the caller.
type TokenPair struct {
	TokenType    string `json:"tokenType"`
	AccessToken  string `json:"accessToken"`
	ExpiresIn    int    `json:"expiresIn"`
	RefreshToken string `json:"refreshToken"`
}

// TokenManager signs and verifies stateless access tokens. Verification
// is purely cryptographic; no store lookup is involved.
type TokenManager interface {
	GenerateAccessToken(principal Principal) (string, error)
	ParseAccessToken(token string) (Principal, error)
}
