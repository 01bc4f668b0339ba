package httpapi

import (
	"context"
	"net/http"
	"strings"

	"restaurante-backend/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

func userFrom(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userKey).(*domain.User)
	return u
}

// bearerToken pulls the access token from the Authorization header, falling
// back to the token query parameter for websocket clients that cannot set
// headers.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// requireUser resolves the token into a user and stores it on the request
// context. Requests without a valid token get 401.
func (h *Handler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.authenticate(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Detail: "not authenticated"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func (h *Handler) authenticate(r *http.Request) (*domain.User, bool) {
	token := bearerToken(r)
	if token == "" {
		return nil, false
	}
	claims, err := h.tokens.ParseToken(token)
	if err != nil {
		return nil, false
	}
	user, err := h.svc.Auth.UserByEmail(r.Context(), claims.Subject)
	if err != nil {
		return nil, false
	}
	return user, true
}
