package web

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/metrics"
	"github.com/PauloHFS/blogum/internal/middleware"
	"github.com/PauloHFS/blogum/internal/policies"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/PauloHFS/blogum/internal/upload"
	"github.com/PauloHFS/blogum/internal/validator"
	"github.com/PauloHFS/blogum/internal/view"
)

// pubDateLayout é o formato do input datetime-local.
const pubDateLayout = "2006-01-02T15:04"

type postListData struct {
	Posts      []db.PostRow
	Pagination view.Pagination
}

func handleIndex(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	paging := db.PagingParams{Page: pageParam(r), PerPage: deps.Config.PageSizes.Main}
	now := time.Now()

	posts, err := deps.Queries.ListVisiblePosts(r.Context(), db.ListVisiblePostsParams{
		Now:      now,
		ViewerID: viewerID(r),
		Limit:    int64(paging.Limit()),
		Offset:   int64(paging.Offset()),
	})
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	total, err := deps.Queries.CountVisiblePosts(r.Context(), db.CountVisiblePostsParams{
		Now:      now,
		ViewerID: viewerID(r),
	})
	if err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}

	page := newPage(r, "Últimos posts")
	page.Data = postListData{
		Posts:      posts,
		Pagination: view.NewPagination(paging.Page, int(total), paging.PerPage),
	}
	return view.Render(w, http.StatusOK, "index", page)
}

type postDetailData struct {
	Post           db.Post
	AuthorUsername string
	Category       db.Category
	Comments       []db.CommentRow
	IsOwner        bool
	CommentText    string
}

func handlePostDetail(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	return renderPostDetail(deps, w, r, http.StatusOK, "", nil)
}

// renderPostDetail é compartilhado entre o GET do detalhe e o re-render do
// formulário de comentário com erros de validação.
func renderPostDetail(deps HandlerDeps, w http.ResponseWriter, r *http.Request, status int, commentText string, fieldErrors map[string]string) error {
	id, ok := pathID(r, "id")
	if !ok {
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
	if !policies.CanViewPost(viewer, post, category, time.Now()) {
		// "Não existe" e "existe mas está oculto" têm a mesma resposta.
		view.NotFound(w, r)
		return nil
	}

	author, err := deps.Queries.GetUserByID(r.Context(), post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to load author: %w", err)
	}

	comments, err := deps.Queries.ListPostComments(r.Context(), post.ID)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	page := newPage(r, post.Title)
	page.Data = postDetailData{
		Post:           post,
		AuthorUsername: author.Username,
		Category:       category,
		Comments:       comments,
		IsOwner:        viewer.ID != 0 && viewer.ID == post.AuthorID,
		CommentText:    commentText,
	}
	for k, v := range fieldErrors {
		page.Errors[k] = v
	}
	return view.Render(w, status, "detail", page)
}

func handleCategory(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	slug := r.PathValue("slug")

	category, err := deps.Queries.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			view.NotFound(w, r)
			return nil
		}
		return fmt.Errorf("failed to load category: %w", err)
	}

	// Categoria despublicada é invisível até na existência.
	if !category.IsPublished {
		view.NotFound(w, r)
		return nil
	}

	paging := db.PagingParams{Page: pageParam(r), PerPage: deps.Config.PageSizes.Category}
	now := time.Now()

	posts, err := deps.Queries.ListCategoryPosts(r.Context(), db.ListCategoryPostsParams{
		CategoryID: category.ID,
		Now:        now,
		ViewerID:   viewerID(r),
		Limit:      int64(paging.Limit()),
		Offset:     int64(paging.Offset()),
	})
	if err != nil {
		return fmt.Errorf("failed to list category posts: %w", err)
	}

	total, err := deps.Queries.CountCategoryPosts(r.Context(), db.CountCategoryPostsParams{
		CategoryID: category.ID,
		Now:        now,
		ViewerID:   viewerID(r),
	})
	if err != nil {
		return fmt.Errorf("failed to count category posts: %w", err)
	}

	page := newPage(r, category.Title)
	page.Data = struct {
		Category   db.Category
		Posts      []db.PostRow
		Pagination view.Pagination
	}{category, posts, view.NewPagination(paging.Page, int(total), paging.PerPage)}
	return view.Render(w, http.StatusOK, "category", page)
}

// --- Criação e mutação de posts ---

type postFormData struct {
	Title        string
	Text         string
	CategoryID   int64
	PubDateValue string
	IsPublished  bool
	Categories   []db.Category
	IsEdit       bool
}

func loadPostForm(r *http.Request) (validator.PostForm, string) {
	pubDateValue := r.FormValue("pub_date")
	var pubDate time.Time
	if pubDateValue != "" {
		if parsed, err := time.ParseInLocation(pubDateLayout, pubDateValue, time.Local); err == nil {
			pubDate = parsed
		}
	}

	catID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)

	return validator.PostForm{
		Title:       r.FormValue("title"),
		Text:        r.FormValue("text"),
		CategoryID:  catID,
		PubDate:     pubDate,
		IsPublished: r.FormValue("is_published") == "1",
	}, pubDateValue
}

func postFormPage(deps HandlerDeps, r *http.Request, form validator.PostForm, pubDateValue string, isEdit bool) (view.Page, error) {
	categories, err := deps.Queries.ListPublishedCategories(r.Context())
	if err != nil {
		return view.Page{}, fmt.Errorf("failed to list categories: %w", err)
	}

	title := "Novo post"
	if isEdit {
		title = "Editar post"
	}
	page := newPage(r, title)
	page.Data = postFormData{
		Title:        form.Title,
		Text:         form.Text,
		CategoryID:   form.CategoryID,
		PubDateValue: pubDateValue,
		IsPublished:  form.IsPublished,
		Categories:   categories,
		IsEdit:       isEdit,
	}
	return page, nil
}

func handlePostCreateForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	form := validator.PostForm{IsPublished: true}
	page, err := postFormPage(deps, r, form, time.Now().Format(pubDateLayout), false)
	if err != nil {
		return err
	}
	return view.Render(w, http.StatusOK, "post_form", page)
}

func handlePostCreate(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	viewer, _ := middleware.GetUser(r.Context())
	form, pubDateValue := loadPostForm(r)

	logging.AddToEvent(r.Context(),
		slog.String("operation", "post_create"),
		slog.Int64("user_id", viewer.ID),
	)

	validation := validator.ValidatePostForm(form)

	// A imagem só toca o disco depois do form passar; um título rejeitado não
	// pode deixar arquivo órfão em storage.
	var imageURL sql.NullString
	var imageErr string
	if validation.Valid {
		imageURL, imageErr = savePostImage(deps, r)
	}

	if !validation.Valid || imageErr != "" {
		page, err := postFormPage(deps, r, form, pubDateValue, false)
		if err != nil {
			return err
		}
		for _, e := range validation.Errors {
			page.Errors[e.Field] = e.Message
		}
		if imageErr != "" {
			page.Errors["image"] = imageErr
		}
		return view.Render(w, http.StatusOK, "post_form", page)
	}

	post, err := deps.Queries.CreatePost(r.Context(), db.CreatePostParams{
		AuthorID:    viewer.ID,
		CategoryID:  form.CategoryID,
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDate,
		IsPublished: form.IsPublished,
		ImageUrl:    imageURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	metrics.PostsCreated.Inc()
	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("post_id", post.ID),
	)

	http.Redirect(w, r, routes.PostDetail(post.ID), http.StatusSeeOther)
	return nil
}

// savePostImage trata o campo opcional de imagem; retorna a URL salva ou uma
// mensagem de erro de validação (string vazia quando não há erro).
func savePostImage(deps HandlerDeps, r *http.Request) (sql.NullString, string) {
	result, err := upload.SaveFile(r, "image", deps.Config.StorageDir, upload.PostImageConfig)
	if err != nil {
		if upload.IsNoFile(err) {
			return sql.NullString{}, ""
		}
		if ue, ok := err.(*upload.UploadError); ok {
			return sql.NullString{}, ue.Message
		}
		return sql.NullString{}, "Falha ao salvar imagem"
	}
	return sql.NullString{String: result.URL, Valid: true}, ""
}

// resolveOwnedPost centraliza a guarda de ownership de post: carrega o post da
// rota e, se o viewer não for o autor, redireciona silenciosamente para o
// detalhe do próprio recurso resolvido. ok=false indica que a resposta já foi
// escrita.
func resolveOwnedPost(deps HandlerDeps, w http.ResponseWriter, r *http.Request) (db.Post, bool, error) {
	id, valid := pathID(r, "id")
	if !valid {
		view.NotFound(w, r)
		return db.Post{}, false, nil
	}

	post, err := deps.Queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			view.NotFound(w, r)
			return db.Post{}, false, nil
		}
		return db.Post{}, false, fmt.Errorf("failed to load post: %w", err)
	}

	viewer, _ := middleware.GetUser(r.Context())
	if !policies.CanEditPost(viewer, post) {
		metrics.OwnershipDenied.WithLabelValues("post").Inc()
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "denied"),
			slog.String("error_reason", "not_owner"),
			slog.Int64("post_id", post.ID),
		)
		http.Redirect(w, r, routes.PostDetail(post.ID), http.StatusSeeOther)
		return db.Post{}, false, nil
	}

	return post, true, nil
}

func handlePostEditForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	post, ok, err := resolveOwnedPost(deps, w, r)
	if !ok {
		return err
	}

	form := validator.PostForm{
		Title:       post.Title,
		Text:        post.Text,
		CategoryID:  post.CategoryID,
		PubDate:     post.PubDate,
		IsPublished: post.IsPublished,
	}
	page, err := postFormPage(deps, r, form, post.PubDate.Format(pubDateLayout), true)
	if err != nil {
		return err
	}
	return view.Render(w, http.StatusOK, "post_form", page)
}

func handlePostEdit(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	post, ok, err := resolveOwnedPost(deps, w, r)
	if !ok {
		return err
	}

	form, pubDateValue := loadPostForm(r)

	logging.AddToEvent(r.Context(),
		slog.String("operation", "post_edit"),
		slog.Int64("post_id", post.ID),
	)

	validation := validator.ValidatePostForm(form)

	var imageURL sql.NullString
	var imageErr string
	if validation.Valid {
		imageURL, imageErr = savePostImage(deps, r)
	}

	if !validation.Valid || imageErr != "" {
		page, err := postFormPage(deps, r, form, pubDateValue, true)
		if err != nil {
			return err
		}
		for _, e := range validation.Errors {
			page.Errors[e.Field] = e.Message
		}
		if imageErr != "" {
			page.Errors["image"] = imageErr
		}
		return view.Render(w, http.StatusOK, "post_form", page)
	}

	if !imageURL.Valid {
		imageURL = post.ImageUrl
	}

	if err := deps.Queries.UpdatePost(r.Context(), db.UpdatePostParams{
		CategoryID:  form.CategoryID,
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDate,
		IsPublished: form.IsPublished,
		ImageUrl:    imageURL,
		ID:          post.ID,
	}); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	http.Redirect(w, r, routes.PostDetail(post.ID), http.StatusSeeOther)
	return nil
}

func handlePostDeleteForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	post, ok, err := resolveOwnedPost(deps, w, r)
	if !ok {
		return err
	}

	page := newPage(r, "Excluir post")
	page.Data = struct{ Post db.Post }{post}
	return view.Render(w, http.StatusOK, "post_delete", page)
}

func handlePostDelete(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	post, ok, err := resolveOwnedPost(deps, w, r)
	if !ok {
		return err
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "post_delete"),
		slog.Int64("post_id", post.ID),
	)

	if err := deps.Queries.DeletePost(r.Context(), post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	http.Redirect(w, r, routes.Home, http.StatusSeeOther)
	return nil
}
