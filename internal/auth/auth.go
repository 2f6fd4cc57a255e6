package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"coworking/internal/config"
	"coworking/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoCredential      = errors.New("no bearer credential available")
	ErrCredentialExpired = errors.New("bearer credential expired")
)

// StaticProvider returns a fixed token.
type StaticProvider struct {
	token string
}

func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: strings.TrimSpace(token)}
}

func (p *StaticProvider) Token(_ context.Context) (string, error) {
	if p.token == "" {
		return "", ErrNoCredential
	}
	return p.token, nil
}

// FileProvider reads the token from disk on every call so that an external
// login process can rotate it.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Token(_ context.Context) (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// ExpiryGuard rejects JWTs whose exp claim has passed. Opaque tokens are
// passed through unchanged; the signature is the backend's concern.
type ExpiryGuard struct {
	next   domain.CredentialProvider
	parser *jwt.Parser
	now    func() time.Time
}

func NewExpiryGuard(next domain.CredentialProvider) *ExpiryGuard {
	return &ExpiryGuard{
		next:   next,
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

func (g *ExpiryGuard) Token(ctx context.Context) (string, error) {
	token, err := g.next.Token(ctx)
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := g.parser.ParseUnverified(token, claims); err != nil {
		return token, nil
	}
	if claims.ExpiresAt != nil && !g.now().Before(claims.ExpiresAt.Time) {
		return "", ErrCredentialExpired
	}
	return token, nil
}

// FromConfig builds the provider chain described by cfg. A token file takes
// precedence over an inline token.
func FromConfig(cfg config.AuthConfig) domain.CredentialProvider {
	var base domain.CredentialProvider
	if cfg.TokenFile != "" {
		base = NewFileProvider(cfg.TokenFile)
	} else {
		base = NewStaticProvider(cfg.Token)
	}
	return NewExpiryGuard(base)
}
