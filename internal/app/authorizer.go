package service

import "context"

// Authorizer answers the single question the core asks of the login flow:
// may this request write to the leaderboard. How the credential was
// obtained is someone else's problem.
type Authorizer interface {
	MayWrite(ctx context.Context, credential string) bool
}

// OpenGate allows every submission. The public deployment runs open; the
// leaderboard is per-day and self-reported anyway.
type OpenGate struct{}

func (OpenGate) MayWrite(context.Context, string) bool { return true }

// TokenGate allows submissions presenting the shared write token.
type TokenGate struct {
	Token string
}

func (g TokenGate) MayWrite(_ context.Context, credential string) bool {
	return g.Token != "" && credential == g.Token
}
