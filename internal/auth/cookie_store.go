package auth

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CookieStore keeps the session in an HS256-signed JWT cookie.
type CookieStore struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewCookieStore creates a CookieStore signing with secret.
func NewCookieStore(secret string, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{
		key:    []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

// Get returns the session carried by the request. A bearer token in the
// Authorization header takes precedence over the cookie.
func (s *CookieStore) Get(r *http.Request) (Session, bool) {
	tokenStr := ""
	if header := r.Header.Get("Authorization"); header != "" {
		if t, ok := strings.CutPrefix(header, "Bearer "); ok {
			tokenStr = strings.TrimSpace(t)
		}
	}
	if tokenStr == "" {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			return Session{}, false
		}
		tokenStr = cookie.Value
	}
	if tokenStr == "" {
		return Session{}, false
	}

	claims, err := s.parse(tokenStr)
	if err != nil {
		return Session{}, false
	}
	return Session{UserID: claims.UserID, Username: claims.Username}, true
}

// Set issues a fresh token for sess and writes it as the session cookie.
func (s *CookieStore) Set(w http.ResponseWriter, sess Session) error {
	token, expires, err := s.Issue(sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

// Clear expires the session cookie. It is safe to call without a session.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// Issue signs a token for sess and returns it with its expiry.
func (s *CookieStore) Issue(sess Session) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &Claims{
		UserID:   sess.UserID,
		Username: sess.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(sess.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expires, nil
}

func (s *CookieStore) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
