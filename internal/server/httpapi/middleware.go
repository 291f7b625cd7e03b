package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/server/auth"
)

// authedHandler receives the user ID resolved from the access token.
type authedHandler func(w http.ResponseWriter, r *http.Request, userID string)

// withAuth verifies the Bearer token issued by the auth provider and passes
// the embedded user ID to the handler. Every file and folder operation is
// scoped to that user.
func (s *Server) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing token")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r, userID)
	}
}
