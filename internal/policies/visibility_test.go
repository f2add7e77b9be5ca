package policies

import (
	"testing"
	"time"

	"github.com/PauloHFS/blogum/internal/db"
)

func TestCanViewPost(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	author := db.User{ID: 2, Username: "autor"}
	other := db.User{ID: 3, Username: "visitante"}
	anon := db.User{}

	published := db.Category{ID: 1, Slug: "general", IsPublished: true}
	unpublished := db.Category{ID: 2, Slug: "hidden", IsPublished: false}

	live := db.Post{ID: 10, AuthorID: 2, CategoryID: 1, IsPublished: true, PubDate: now.Add(-time.Hour)}
	draft := db.Post{ID: 11, AuthorID: 2, CategoryID: 1, IsPublished: false, PubDate: now.Add(-time.Hour)}
	scheduled := db.Post{ID: 12, AuthorID: 2, CategoryID: 1, IsPublished: true, PubDate: now.Add(time.Hour)}
	inHidden := db.Post{ID: 13, AuthorID: 2, CategoryID: 2, IsPublished: true, PubDate: now.Add(-time.Hour)}

	tests := []struct {
		name     string
		viewer   db.User
		post     db.Post
		category db.Category
		expected bool
	}{
		{"Anônimo vê post publicado", anon, live, published, true},
		{"Anônimo não vê rascunho", anon, draft, published, false},
		{"Anônimo não vê post agendado", anon, scheduled, published, false},
		{"Anônimo não vê post em categoria oculta", anon, inHidden, unpublished, false},
		{"Outro usuário não vê rascunho", other, draft, published, false},
		{"Outro usuário não vê post agendado", other, scheduled, published, false},
		{"Autor vê rascunho", author, draft, published, true},
		{"Autor vê post agendado", author, scheduled, published, true},
		{"Autor vê post em categoria oculta", author, inHidden, unpublished, true},
		{"Outro usuário vê post publicado", other, live, published, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanViewPost(tt.viewer, tt.post, tt.category, now)
			if result != tt.expected {
				t.Errorf("falha em %s: esperado %v, obtido %v", tt.name, tt.expected, result)
			}
		})
	}
}

func TestCanViewPostAtExactPubDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := db.Post{ID: 1, AuthorID: 5, IsPublished: true, PubDate: now}
	category := db.Category{ID: 1, IsPublished: true}

	// pub_date <= now: no instante exato o post já está visível
	if !CanViewPost(db.User{ID: 9}, post, category, now) {
		t.Error("post com pub_date igual a now deveria estar visível")
	}
}
