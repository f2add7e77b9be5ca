package middleware

import (
	"context"
	"net/http"

	"github.com/PauloHFS/blogum/internal/contextkeys"
	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/alexedwards/scs/v2"
)

// RequireAuth roda ANTES de qualquer guarda de ownership: viewer não
// autenticado é mandado para o login sem que a mutação seja avaliada.
func RequireAuth(sm *scs.SessionManager, queries *db.Queries, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := sm.GetInt64(r.Context(), "user_id")
		if userID == 0 {
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		user, err := queries.GetUserByID(r.Context(), userID)
		if err != nil {
			_ = sm.Destroy(r.Context())
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), contextkeys.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoadUser injeta o usuário logado no contexto quando houver sessão, mas não
// exige login. Rotas públicas usam isso para aplicar o owner bypass.
func LoadUser(sm *scs.SessionManager, queries *db.Queries, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := sm.GetInt64(r.Context(), "user_id")
		if userID != 0 {
			if user, err := queries.GetUserByID(r.Context(), userID); err == nil {
				ctx := context.WithValue(r.Context(), contextkeys.UserContextKey, user)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser recupera o usuário do contexto de forma segura
func GetUser(ctx context.Context) (db.User, bool) {
	user, ok := ctx.Value(contextkeys.UserContextKey).(db.User)
	return user, ok
}
