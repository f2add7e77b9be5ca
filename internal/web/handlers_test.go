package web

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/PauloHFS/blogum/internal/config"
	"github.com/PauloHFS/blogum/internal/contextkeys"
	"github.com/PauloHFS/blogum/internal/db"
)

func setupTestDeps(t *testing.T) HandlerDeps {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_loc=UTC"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.RunMigrations(context.Background(), conn); err != nil {
		t.Fatalf("falha ao rodar migrações: %v", err)
	}

	return HandlerDeps{
		DB:             conn,
		Queries:        db.New(conn),
		SessionManager: scs.New(),
		Config: &config.Config{
			Port:        "0",
			DatabaseURL: dsn,
			StorageDir:  t.TempDir(),
			Env:         "dev",
			PageSizes:   config.PageSizes{Main: 10, Category: 10, Profile: 10},
		},
	}
}

type blogFixtures struct {
	author db.User
	other  db.User
	public db.Category
	hidden db.Category
	live   db.Post
	draft  db.Post
	future db.Post
	buried db.Post // publicado, mas em categoria despublicada
}

func seedBlog(t *testing.T, q *db.Queries) blogFixtures {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	author, err := q.CreateUser(ctx, db.CreateUserParams{
		Username: "alice", Email: "alice@example.com", PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	other, err := q.CreateUser(ctx, db.CreateUserParams{
		Username: "bob", Email: "bob@example.com", PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	public, err := q.CreateCategory(ctx, db.CreateCategoryParams{
		Slug: "geral", Title: "Geral", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	hidden, err := q.CreateCategory(ctx, db.CreateCategoryParams{
		Slug: "oculta", Title: "Oculta", IsPublished: false,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	newPost := func(title string, cat db.Category, pubDate time.Time, published bool) db.Post {
		p, err := q.CreatePost(ctx, db.CreatePostParams{
			AuthorID:    author.ID,
			CategoryID:  cat.ID,
			Title:       title,
			Text:        "texto do post",
			PubDate:     pubDate,
			IsPublished: published,
		})
		if err != nil {
			t.Fatalf("CreatePost(%s): %v", title, err)
		}
		return p
	}

	return blogFixtures{
		author: author,
		other:  other,
		public: public,
		hidden: hidden,
		live:   newPost("Post ao vivo", public, now.Add(-time.Hour), true),
		draft:  newPost("Rascunho secreto", public, now.Add(-time.Hour), false),
		future: newPost("Post agendado", public, now.Add(24*time.Hour), true),
		buried: newPost("Post enterrado", hidden, now.Add(-time.Hour), true),
	}
}

// asUser injeta o usuário no contexto da request, como o middleware faria.
func asUser(r *http.Request, user db.User) *http.Request {
	ctx := context.WithValue(r.Context(), contextkeys.UserContextKey, user)
	return r.WithContext(ctx)
}

// formRequest monta um POST urlencoded pronto para FormValue.
func formRequest(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// serve executa um AppHandler direto, sem a cadeia de middlewares.
func serve(deps HandlerDeps, h AppHandler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	Handle(deps, h)(w, r)
	return w
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("esperado status 303, obtido %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("esperado redirect para %s, obtido %s", location, got)
	}
}
