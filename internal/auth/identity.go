package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

var (
	ErrMissingToken     = errors.New("missing authorization token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrDomainNotAllowed = errors.New("account domain is not allowed")
)

// Identity is the result of checking a bearer token.
type Identity struct {
	Authenticated   bool   `json:"authenticated"`
	DisplayIdentity string `json:"display_identity"`
	UID             string `json:"uid"`
	Email           string `json:"email"`
}

// Provider resolves a bearer token to an identity. An error always comes with an
// unauthenticated Identity.
type Provider interface {
	Identify(ctx context.Context, bearerToken string) (Identity, error)
}

// TokenVerifier is satisfied by *firebase auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseProvider verifies Firebase ID tokens and, when allowedDomain is set, only admits
// email addresses in that domain.
type FirebaseProvider struct {
	verifier      TokenVerifier
	allowedDomain string
}

func NewFirebaseProvider(verifier TokenVerifier, allowedDomain string) *FirebaseProvider {
	return &FirebaseProvider{
		verifier:      verifier,
		allowedDomain: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(allowedDomain), "@")),
	}
}

func (p *FirebaseProvider) Identify(ctx context.Context, bearerToken string) (Identity, error) {
	if strings.TrimSpace(bearerToken) == "" {
		return Identity{}, ErrMissingToken
	}

	token, err := p.verifier.VerifyIDToken(ctx, bearerToken)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if p.allowedDomain != "" && !strings.HasSuffix(strings.ToLower(email), "@"+p.allowedDomain) {
		return Identity{}, fmt.Errorf("%w: please sign in with your @%s account", ErrDomainNotAllowed, p.allowedDomain)
	}

	display := email
	if name, ok := token.Claims["name"].(string); ok && strings.TrimSpace(name) != "" {
		display = strings.TrimSpace(name)
	}
	return Identity{Authenticated: true, DisplayIdentity: display, UID: token.UID, Email: email}, nil
}

// StaticProvider admits every request as the same identity. Use it only when auth is
// disabled for local development.
type StaticProvider struct {
	Identity Identity
}

func (p StaticProvider) Identify(context.Context, string) (Identity, error) {
	id := p.Identity
	id.Authenticated = true
	return id, nil
}
