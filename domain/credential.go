package domain

// Credential is the closed set of credential shapes the realm accepts.
// The marker method keeps the set closed to this package; the realm
// switches over the concrete types and treats anything else as
// unsupported.
type Credential interface {
	credential()
}

// RefreshIdentifier asks for a refresh grant: the bearer presents only
// the refresh token string of a previously issued pair.
type RefreshIdentifier struct {
	Token string
}

// LiveTokenPair presents an already-resolved pair, typically looked up
// from the token store by its access token.
type LiveTokenPair struct {
	Pair TokenPair
}

func (RefreshIdentifier) credential() {}
func (LiveTokenPair) credential()     {}
