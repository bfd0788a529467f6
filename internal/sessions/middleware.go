package sessions

import (
	"context"
	"net/http"
)

type contextKey struct{}

// Middleware resolves the request's session from its cookie, creating
// a fresh session (and setting the cookie) when the cookie is absent
// or stale, and injects the session into the request context.
func Middleware(m *Manager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *Session

			if cookie, err := r.Cookie(cookieName); err == nil {
				if existing, ok := m.Get(cookie.Value); ok {
					sess = existing
				}
			}

			if sess == nil {
				sess = m.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sess.ID(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext extracts the session injected by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok
}
