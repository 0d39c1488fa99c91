package domain

// Identity is the claim set carried by an access token. Nothing else is
// embedded in the token.
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// CanActOn reports whether the identity may modify the given user account.
func (i Identity) CanActOn(username string) bool {
	return i.IsAdmin || i.Username == username
}
