package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/middleware"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/PauloHFS/blogum/internal/validator"
	"github.com/PauloHFS/blogum/internal/view"
)

type profileData struct {
	Profile    db.User
	Posts      []db.PostRow
	Pagination view.Pagination
	IsOwner    bool
}

// handleProfile lista os posts de um usuário. O dono do perfil vê tudo,
// inclusive rascunhos e posts agendados; o resto do mundo só vê o que o
// filtro de visibilidade libera — a cláusula de bypass cuida dos dois casos.
func handleProfile(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	username := r.PathValue("username")

	profile, err := deps.Queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			view.NotFound(w, r)
			return nil
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	paging := db.PagingParams{Page: pageParam(r), PerPage: deps.Config.PageSizes.Profile}
	now := time.Now()

	posts, err := deps.Queries.ListAuthorPosts(r.Context(), db.ListAuthorPostsParams{
		AuthorID: profile.ID,
		Now:      now,
		ViewerID: viewerID(r),
		Limit:    int64(paging.Limit()),
		Offset:   int64(paging.Offset()),
	})
	if err != nil {
		return fmt.Errorf("failed to list profile posts: %w", err)
	}

	total, err := deps.Queries.CountAuthorPosts(r.Context(), db.CountAuthorPostsParams{
		AuthorID: profile.ID,
		Now:      now,
		ViewerID: viewerID(r),
	})
	if err != nil {
		return fmt.Errorf("failed to count profile posts: %w", err)
	}

	page := newPage(r, "@"+profile.Username)
	page.Data = profileData{
		Profile:    profile,
		Posts:      posts,
		Pagination: view.NewPagination(paging.Page, int(total), paging.PerPage),
		IsOwner:    viewerID(r) == profile.ID,
	}
	return view.Render(w, http.StatusOK, "profile", page)
}

type profileFormData struct {
	DisplayName string
	Email       string
}

func handleProfileEditForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	viewer, _ := middleware.GetUser(r.Context())

	page := newPage(r, "Editar perfil")
	page.Data = profileFormData{DisplayName: viewer.DisplayName, Email: viewer.Email}
	return view.Render(w, http.StatusOK, "profile_form", page)
}

// handleProfileEdit só altera o próprio perfil: o alvo é sempre o usuário da
// sessão, nunca um id vindo da rota.
func handleProfileEdit(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	viewer, _ := middleware.GetUser(r.Context())

	form := validator.ProfileForm{
		DisplayName: r.FormValue("display_name"),
		Email:       r.FormValue("email"),
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "profile_edit"),
		slog.Int64("user_id", viewer.ID),
	)

	validation := validator.ValidateProfileForm(form)
	if !validation.Valid {
		page := newPage(r, "Editar perfil")
		page.Data = profileFormData{DisplayName: form.DisplayName, Email: form.Email}
		for _, e := range validation.Errors {
			page.Errors[e.Field] = e.Message
		}
		return view.Render(w, http.StatusOK, "profile_form", page)
	}

	if err := deps.Queries.UpdateUserProfile(r.Context(), db.UpdateUserProfileParams{
		DisplayName: form.DisplayName,
		Email:       form.Email,
		ID:          viewer.ID,
	}); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	http.Redirect(w, r, routes.Profile(viewer.Username), http.StatusSeeOther)
	return nil
}
