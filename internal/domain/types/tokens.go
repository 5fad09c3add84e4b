package types

// TokenPair holds the credentials issued by POST /auth/login.
//
// Both members are present or both are absent; stores never hold half a pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are set.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
