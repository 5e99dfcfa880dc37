// Package profilecookie issues and resolves the signed cookie that identifies
// a browser profile.
//
// The cookie holds an HS256 JWT whose subject is a random profile id. A
// missing, expired or tampered token yields a fresh profile.
package profilecookie

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/louisbranch/cgpa/internal/services/web/platform/httpx"
	"github.com/louisbranch/cgpa/internal/services/web/platform/requestmeta"
)

// Name is the canonical profile cookie name.
const Name = "cgpa_profile"

// Lifetime is how long a minted profile token stays valid.
const Lifetime = 365 * 24 * time.Hour

const (
	issuer       = "cgpa"
	minKeyLength = 32
)

// ErrInvalidToken reports a token that cannot identify a profile.
var ErrInvalidToken = errors.New("invalid profile token")

type contextKey struct{}

// Issuer mints and verifies profile tokens.
type Issuer struct {
	key    []byte
	policy requestmeta.SchemePolicy
	secure bool
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithSecure forces the Secure attribute on written cookies.
func WithSecure(secure bool) Option {
	return func(i *Issuer) {
		i.secure = secure
	}
}

// WithSchemePolicy sets how request scheme is detected for the Secure
// attribute when WithSecure is not set.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(i *Issuer) {
		i.policy = policy
	}
}

// WithClock overrides the token clock.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer builds an Issuer signing with key. An empty key is replaced by a
// random per-process key, so profiles do not survive restarts.
func NewIssuer(key []byte, opts ...Option) (*Issuer, error) {
	if len(key) == 0 {
		key = make([]byte, minKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate profile key: %w", err)
		}
	}
	if len(key) < minKeyLength {
		return nil, fmt.Errorf("profile key must be at least %d bytes", minKeyLength)
	}
	i := &Issuer{key: append([]byte{}, key...), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i, nil
}

// Mint returns a new profile id and its signed token.
func (i *Issuer) Mint() (string, string, error) {
	profileID := uuid.NewString()
	now := i.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   profileID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", "", fmt.Errorf("sign profile token: %w", err)
	}
	return profileID, token, nil
}

// Parse verifies token and returns the profile id it carries.
func (i *Issuer) Parse(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	profileID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("%w: subject is not a profile id", ErrInvalidToken)
	}
	return profileID.String(), nil
}

// Middleware resolves the request profile, minting and writing a new cookie
// when the request carries no valid one.
func (i *Issuer) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID, ok := i.resolve(r)
			if !ok {
				var token string
				var err error
				profileID, token, err = i.Mint()
				if err != nil {
					httpx.WriteError(w, err)
					return
				}
				i.write(w, r, token)
			}
			next.ServeHTTP(w, r.WithContext(WithProfileID(r.Context(), profileID)))
		})
	}
}

func (i *Issuer) resolve(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	profileID, err := i.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return profileID, true
}

func (i *Issuer) write(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Lifetime / time.Second),
		HttpOnly: true,
		Secure:   i.secure || requestmeta.IsHTTPS(r, i.policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// WithProfileID stores a resolved profile id on ctx.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, contextKey{}, profileID)
}

// ProfileID returns the profile id resolved by Middleware.
func ProfileID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	profileID, ok := ctx.Value(contextKey{}).(string)
	return profileID, ok && profileID != ""
}
