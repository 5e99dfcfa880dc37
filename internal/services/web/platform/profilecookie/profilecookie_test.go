package profilecookie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestMintAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testKey)
	if err != nil {
		t.Fatalf("NewIssuer() = %v", err)
	}
	profileID, token, err := issuer.Mint()
	if err != nil {
		t.Fatalf("Mint() = %v", err)
	}
	if _, err := uuid.Parse(profileID); err != nil {
		t.Fatalf("profile id %q is not a uuid: %v", profileID, err)
	}
	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if got != profileID {
		t.Fatalf("Parse() = %q, want %q", got, profileID)
	}
}

func TestNewIssuerRejectsShortKey(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer([]byte("short")); err == nil {
		t.Fatal("expected short key error")
	}
	if _, err := NewIssuer(nil); err != nil {
		t.Fatalf("NewIssuer(nil) = %v, want random key", err)
	}
}

func TestParseRejectsForeignAndExpiredTokens(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer(testKey)
	other, _ := NewIssuer([]byte("fedcba9876543210fedcba9876543210"))
	_, foreign, _ := other.Mint()
	if _, err := issuer.Parse(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse(foreign) = %v, want ErrInvalidToken", err)
	}

	past, _ := NewIssuer(testKey, WithClock(func() time.Time {
		return time.Now().Add(-2 * Lifetime)
	}))
	_, expired, _ := past.Mint()
	if _, err := issuer.Parse(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse(expired) = %v, want ErrInvalidToken", err)
	}

	if _, err := issuer.Parse("  "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse(blank) = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsNonUUIDSubject(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer(testKey)
	claims := jwt.RegisteredClaims{
		Issuer:    "cgpa",
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse() = %v, want ErrInvalidToken", err)
	}
}

func TestMiddlewareMintsCookieWhenMissing(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer(testKey)
	var seen string
	h := issuer.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ProfileID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != Name {
		t.Fatalf("cookies = %+v, want one %s cookie", cookies, Name)
	}
	if !cookies[0].HttpOnly || cookies[0].Secure {
		t.Fatalf("cookie flags HttpOnly=%v Secure=%v", cookies[0].HttpOnly, cookies[0].Secure)
	}
	got, err := issuer.Parse(cookies[0].Value)
	if err != nil || got != seen {
		t.Fatalf("cookie profile = %q (%v), handler saw %q", got, err, seen)
	}
}

func TestMiddlewareReusesValidCookie(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer(testKey, WithSecure(true))
	profileID, token, _ := issuer.Mint()

	var seen string
	h := issuer.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ProfileID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: token})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != profileID {
		t.Fatalf("profile = %q, want %q", seen, profileID)
	}
	if got := rr.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("Set-Cookie = %q, want none", got)
	}
}

func TestMiddlewareReplacesTamperedCookie(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer(testKey, WithSecure(true))
	_, token, _ := issuer.Mint()

	h := issuer.Middleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: token + "x"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	setCookie := rr.Header().Get("Set-Cookie")
	if !strings.HasPrefix(setCookie, Name+"=") || !strings.Contains(setCookie, "Secure") {
		t.Fatalf("Set-Cookie = %q, want fresh secure cookie", setCookie)
	}
}

func TestProfileIDMissing(t *testing.T) {
	t.Parallel()

	if _, ok := ProfileID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Fatal("expected no profile id")
	}
}
