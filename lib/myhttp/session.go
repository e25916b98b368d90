package myhttp

import (
	"net/http"
	"time"

	"github.com/MarcGrol/onlineshop/lib/myuuid"
)

const SessionCookieName = "sessionid"

// SessionUID returns the opaque session token of the visitor. A new token is
// issued when the request does not carry one. The cookie is written on every
// request so its expiry slides with the visitor's activity.
func SessionUID(w http.ResponseWriter, r *http.Request, uuider myuuid.UUIDer, maxAge time.Duration) string {
	sessionUID, found := RequestSessionUID(r)
	if !found {
		sessionUID = uuider.Create()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionUID,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionUID
}

// RequestSessionUID returns the session token carried by the request, without issuing one.
func RequestSessionUID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
