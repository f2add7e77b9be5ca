package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/metrics"
	"github.com/PauloHFS/blogum/internal/middleware"
	"github.com/PauloHFS/blogum/internal/policies"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/PauloHFS/blogum/internal/validator"
	"github.com/PauloHFS/blogum/internal/view"
)

func handleCommentCreate(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	id, valid := pathID(r, "id")
	if !valid {
		view.NotFound(w, r)
		return nil
	}

	post, err := deps.Queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			view.NotFound(w, r)
			return nil
		}
		return fmt.Errorf("failed to load post: %w", err)
	}

	category, err := deps.Queries.GetCategoryByID(r.Context(), post.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}

	viewer, _ := middleware.GetUser(r.Context())
	// Comentar não exige ownership, mas exige que o post esteja visível.
	if !policies.CanViewPost(viewer, post, category, time.Now()) {
		view.NotFound(w, r)
		return nil
	}

	form := validator.CommentForm{Text: r.FormValue("text")}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "comment_create"),
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", viewer.ID),
	)

	validation := validator.ValidateCommentForm(form)
	if !validation.Valid {
		fieldErrors := map[string]string{}
		for _, e := range validation.Errors {
			fieldErrors[e.Field] = e.Message
		}
		return renderPostDetail(deps, w, r, http.StatusOK, form.Text, fieldErrors)
	}

	comment, err := deps.Queries.CreateComment(r.Context(), db.CreateCommentParams{
		PostID:   post.ID,
		AuthorID: viewer.ID,
		Text:     form.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()
	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("comment_id", comment.ID),
	)

	http.Redirect(w, r, routes.PostDetail(post.ID), http.StatusSeeOther)
	return nil
}

// resolveOwnedComment é a guarda de ownership de comentário: mesma decisão da
// guarda de post, mudando só o lookup. O redirect usa o post_id do comentário
// resolvido, não o parâmetro {id} da rota — os dois podem divergir.
func resolveOwnedComment(deps HandlerDeps, w http.ResponseWriter, r *http.Request) (db.Comment, bool, error) {
	commentID, valid := pathID(r, "commentID")
	if !valid {
		view.NotFound(w, r)
		return db.Comment{}, false, nil
	}

	comment, err := deps.Queries.GetCommentByID(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			view.NotFound(w, r)
			return db.Comment{}, false, nil
		}
		return db.Comment{}, false, fmt.Errorf("failed to load comment: %w", err)
	}

	viewer, _ := middleware.GetUser(r.Context())
	if !policies.CanEditComment(viewer, comment) {
		metrics.OwnershipDenied.WithLabelValues("comment").Inc()
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "denied"),
			slog.String("error_reason", "not_owner"),
			slog.Int64("comment_id", comment.ID),
		)
		http.Redirect(w, r, routes.PostDetail(comment.PostID), http.StatusSeeOther)
		return db.Comment{}, false, nil
	}

	return comment, true, nil
}

type commentFormData struct {
	PostID    int64
	CommentID int64
	Text      string
}

func handleCommentEditForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	comment, ok, err := resolveOwnedComment(deps, w, r)
	if !ok {
		return err
	}

	page := newPage(r, "Editar comentário")
	page.Data = commentFormData{PostID: comment.PostID, CommentID: comment.ID, Text: comment.Text}
	return view.Render(w, http.StatusOK, "comment_form", page)
}

func handleCommentEdit(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	comment, ok, err := resolveOwnedComment(deps, w, r)
	if !ok {
		return err
	}

	form := validator.CommentForm{Text: r.FormValue("text")}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "comment_edit"),
		slog.Int64("comment_id", comment.ID),
	)

	validation := validator.ValidateCommentForm(form)
	if !validation.Valid {
		page := newPage(r, "Editar comentário")
		page.Data = commentFormData{PostID: comment.PostID, CommentID: comment.ID, Text: form.Text}
		for _, e := range validation.Errors {
			page.Errors[e.Field] = e.Message
		}
		return view.Render(w, http.StatusOK, "comment_form", page)
	}

	if err := deps.Queries.UpdateComment(r.Context(), db.UpdateCommentParams{
		Text: form.Text,
		ID:   comment.ID,
	}); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	http.Redirect(w, r, routes.PostDetail(comment.PostID), http.StatusSeeOther)
	return nil
}

func handleCommentDelete(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	comment, ok, err := resolveOwnedComment(deps, w, r)
	if !ok {
		return err
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "comment_delete"),
		slog.Int64("comment_id", comment.ID),
	)

	if err := deps.Queries.DeleteComment(r.Context(), comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	http.Redirect(w, r, routes.PostDetail(comment.PostID), http.StatusSeeOther)
	return nil
}
