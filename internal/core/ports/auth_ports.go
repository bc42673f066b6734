package ports

import (
	"context"

	"github.com/pollboard/api/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
}

// TokenPair is what every sign-in path hands back to the HTTP layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	SignUp(ctx context.Context, email, name, password string) (*TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*TokenPair, error)
	SignInWithGoogle(ctx context.Context, googleToken string) (*TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

type TokenPayload struct {
	Email string
	Name  string
}

// TokenVerifier validates a third-party identity token and extracts the
// claims this service cares about.
type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}
