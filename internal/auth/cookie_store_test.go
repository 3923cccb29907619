package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gotest.tools/v3/assert"
)

// roundTrip copies the cookies set on rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCookieStoreSetGet(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, true)

	rec := httptest.NewRecorder()
	assert.NilError(t, store.Set(rec, Session{UserID: 7, Username: "alice"}))

	cookies := rec.Result().Cookies()
	assert.Equal(t, len(cookies), 1)
	assert.Equal(t, cookies[0].Name, CookieName)
	assert.Assert(t, cookies[0].HttpOnly)
	assert.Assert(t, cookies[0].Secure)

	sess, ok := store.Get(roundTrip(rec))
	assert.Assert(t, ok)
	assert.DeepEqual(t, sess, Session{UserID: 7, Username: "alice"})
}

func TestCookieStoreNoSession(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, false)
	_, ok := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Assert(t, !ok)
}

func TestCookieStoreRejectsForeignSignature(t *testing.T) {
	other := NewCookieStore("other-secret", time.Hour, false)
	rec := httptest.NewRecorder()
	assert.NilError(t, other.Set(rec, Session{UserID: 1, Username: "mallory"}))

	store := NewCookieStore("secret", time.Hour, false)
	_, ok := store.Get(roundTrip(rec))
	assert.Assert(t, !ok)
}

func TestCookieStoreRejectsExpired(t *testing.T) {
	store := NewCookieStore("secret", time.Minute, false)
	store.now = func() time.Time { return time.Now().Add(-time.Hour) }
	rec := httptest.NewRecorder()
	assert.NilError(t, store.Set(rec, Session{UserID: 1, Username: "alice"}))

	store.now = time.Now
	_, ok := store.Get(roundTrip(rec))
	assert.Assert(t, !ok)
}

func TestCookieStoreRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: 1, Username: "alice"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NilError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	_, ok := NewCookieStore("secret", time.Hour, false).Get(r)
	assert.Assert(t, !ok)
}

func TestCookieStoreBearerToken(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, false)
	token, expires, err := store.Issue(Session{UserID: 3, Username: "bob"})
	assert.NilError(t, err)
	assert.Assert(t, expires.After(time.Now()))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	sess, ok := store.Get(r)
	assert.Assert(t, ok)
	assert.Equal(t, sess.Username, "bob")
}

func TestCookieStoreClearIsIdempotent(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, false)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		store.Clear(rec)

		cookies := rec.Result().Cookies()
		assert.Equal(t, len(cookies), 1)
		assert.Equal(t, cookies[0].Name, CookieName)
		assert.Equal(t, cookies[0].Value, "")
		assert.Assert(t, cookies[0].MaxAge < 0)
	}
}
