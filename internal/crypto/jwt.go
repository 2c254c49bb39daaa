package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

const (
	tokenIssuer   = "cyberkittens"
	tokenAudience = "cyberkittens-api"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingSecret = errors.New("token signing secret is not configured")
)

// Claims represents the JWT claims for Cyber Kittens authentication.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Username string `json:"username"`
}

// TokenCodec signs and verifies identity tokens with a single HMAC secret.
type TokenCodec struct {
	secret []byte
	expiry time.Duration
}

// NewTokenCodec creates a TokenCodec. An empty secret is accepted here and
// reported as ErrMissingSecret on every Sign and Verify call.
func NewTokenCodec(secret string, expiry time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), expiry: expiry}
}

// Sign creates a signed JWT carrying the identity claim.
func (c *TokenCodec) Sign(id model.Identity) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   id.ID,
		Username: id.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token string, returning the identity it carries.
func (c *TokenCodec) Verify(tokenString string) (model.Identity, error) {
	if len(c.secret) == 0 {
		return model.Identity{}, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{ID: claims.UserID, Username: claims.Username}, nil
}
