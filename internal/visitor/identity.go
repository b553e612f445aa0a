// Package visitor assigns every browser an anonymous tracking token.
//
// The token is an analytics signal only. It is not a credential and is never
// tied to db.User.
package visitor

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName is the cookie carrying the token.
	CookieName = "uid"
	// CookieMaxAge is ten years in seconds.
	CookieMaxAge = 60 * 60 * 24 * 365 * 10

	contextKey = "visitor.token"
)

// Token is an anonymous visitor identifier: 32 lowercase hex characters for
// generated tokens, or whatever non-empty value the client sent back.
type Token string

func (t Token) String() string {
	return string(t)
}

// NewToken returns a fresh random 128-bit token.
func NewToken() Token {
	id := uuid.New()
	return Token(hex.EncodeToString(id[:]))
}

// Resolve returns the token carried by cookieValue, or a new one when it is empty.
// The cookie must be written back in both cases to refresh its expiry.
func Resolve(cookieValue string) (Token, bool) {
	if cookieValue != "" {
		return Token(cookieValue), true
	}
	return NewToken(), true
}

// Middleware resolves the visitor token, stores it on the request context and
// sets the cookie on every response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(CookieName)
		token, shouldSet := Resolve(raw)
		c.Set(contextKey, token)

		if shouldSet {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     CookieName,
				Value:    token.String(),
				Path:     "/",
				MaxAge:   CookieMaxAge,
				HttpOnly: true,
				Secure:   c.Request.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Next()
	}
}

// FromContext returns the token stored by Middleware, or "" when the middleware did not run.
func FromContext(c *gin.Context) Token {
	if v, ok := c.Get(contextKey); ok {
		if token, ok := v.(Token); ok {
			return token
		}
	}
	return ""
}

// IsGenerated reports whether t has the shape of a token produced by NewToken.
func IsGenerated(t Token) bool {
	if len(t) != 32 {
		return false
	}
	return strings.IndexFunc(string(t), func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f')
	}) == -1
}
