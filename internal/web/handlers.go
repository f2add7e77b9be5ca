package web

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/PauloHFS/blogum/internal/config"
	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/middleware"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/PauloHFS/blogum/internal/view"
	"github.com/alexedwards/scs/v2"
)

type HandlerDeps struct {
	DB             *sql.DB
	Queries        *db.Queries
	SessionManager *scs.SessionManager
	Config         *config.Config
}

// AppHandler é um tipo customizado que permite retornar erros dos handlers
type AppHandler func(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error

// Handle envolve nosso AppHandler para conformidade com http.HandlerFunc
func Handle(deps HandlerDeps, h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(deps, w, r); err != nil {
			logging.Get().Error("request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)

			view.ServerError(w, r)
		}
	}
}

func RegisterRoutes(mux *http.ServeMux, deps HandlerDeps) {
	public := func(h AppHandler) http.Handler {
		return middleware.LoadUser(deps.SessionManager, deps.Queries, Handle(deps, h))
	}
	protected := func(h AppHandler) http.Handler {
		return middleware.RequireAuth(deps.SessionManager, deps.Queries, Handle(deps, h))
	}

	// Auth
	mux.Handle("GET "+routes.Register, public(handleRegisterForm))
	mux.Handle("POST "+routes.Register, public(handleRegister))
	mux.Handle("GET "+routes.Login, public(handleLoginForm))
	mux.Handle("POST "+routes.Login, public(handleLogin))
	mux.Handle("POST "+routes.Logout, public(handleLogout))

	// Posts
	mux.Handle("GET "+routes.Home+"{$}", public(handleIndex))
	mux.Handle("GET "+routes.PostCreate, protected(handlePostCreateForm))
	mux.Handle("POST "+routes.PostCreate, protected(handlePostCreate))
	mux.Handle("GET /posts/{id}", public(handlePostDetail))
	mux.Handle("GET /posts/{id}/edit", protected(handlePostEditForm))
	mux.Handle("POST /posts/{id}/edit", protected(handlePostEdit))
	mux.Handle("GET /posts/{id}/delete", protected(handlePostDeleteForm))
	mux.Handle("POST /posts/{id}/delete", protected(handlePostDelete))

	// Comments
	mux.Handle("POST /posts/{id}/comment", protected(handleCommentCreate))
	mux.Handle("GET /post/{id}/edit_comment/{commentID}", protected(handleCommentEditForm))
	mux.Handle("POST /post/{id}/edit_comment/{commentID}", protected(handleCommentEdit))
	mux.Handle("POST /post/{id}/delete_comment/{commentID}", protected(handleCommentDelete))

	// Categories e perfis
	mux.Handle("GET /category/{slug}", public(handleCategory))
	mux.Handle("GET "+routes.ProfileEdit, protected(handleProfileEditForm))
	mux.Handle("POST "+routes.ProfileEdit, protected(handleProfileEdit))
	mux.Handle("GET /profile/{username}", public(handleProfile))
}

// --- Helpers ---

// newPage monta o envelope comum com token CSRF e viewer (nil se anônimo).
func newPage(r *http.Request, title string) view.Page {
	page := view.Page{
		Title:     title,
		CSRFToken: view.CSRFToken(r.Context()),
		Errors:    map[string]string{},
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		page.Viewer = &user
	}
	return page
}

func viewerID(r *http.Request) int64 {
	if user, ok := middleware.GetUser(r.Context()); ok {
		return user.ID
	}
	return 0
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}
