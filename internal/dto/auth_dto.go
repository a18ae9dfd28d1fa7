package dto

// AuthResponse is the token envelope the backend issues on any successful
// sign-in path.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type GoogleSignInRequest struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}
