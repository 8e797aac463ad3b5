package auth

import (
	"net/http"
	"time"
)

// SessionCookie builds the HTTP-only session cookie carrying the token.
// Its max-age mirrors the token expiry.
func SessionCookie(name, token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired cookie that removes the session
// from the client. Already-issued tokens stay valid until they expire;
// there is no server-side revocation list.
func ClearSessionCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
