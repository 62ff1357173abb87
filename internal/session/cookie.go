package session

import (
	"net/http"
	"time"
)

type Cookies struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Set writes the session cookie. It stays readable by scripts because the
// browser client echoes the token in cart and order payloads.
func (c Cookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) Token(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// FromRequest prefers a token sent in the payload and falls back to the cookie.
func (c Cookies) FromRequest(r *http.Request, payloadToken string) string {
	if payloadToken != "" {
		return payloadToken
	}
	return c.Token(r)
}
