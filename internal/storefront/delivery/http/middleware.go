package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/storefront/internal/storefront/session"
)

type contextKey string

const sessionKey contextKey = "session"

// Session headers. The fragment header carries the page's URL fragment so a
// new session starts on the page the shopper landed on.
const (
	SessionHeader  = "X-Session-ID"
	FragmentHeader = "X-Fragment"
)

// withSession resolves the shopper's session from the request, creating one
// when the header is missing or unknown, and echoes its id back
func (h *StorefrontHandler) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Ids are minted here, so anything that isn't one of ours starts fresh
		id := strings.TrimSpace(r.Header.Get(SessionHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = ""
		}
		fragment := r.Header.Get(FragmentHeader)
		if fragment == "" {
			fragment = r.URL.Query().Get("fragment")
		}

		s, _ := h.registry.GetOrCreate(r.Context(), id, fragment)
		w.Header().Set(SessionHeader, s.ID)

		ctx := context.WithValue(r.Context(), sessionKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}
