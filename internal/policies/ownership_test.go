package policies

import (
	"testing"

	"github.com/PauloHFS/blogum/internal/db"
)

func TestCanEditPost(t *testing.T) {
	author := db.User{ID: 2, Username: "autor"}
	other := db.User{ID: 3, Username: "outro"}
	anon := db.User{}

	post := db.Post{ID: 10, AuthorID: 2}

	tests := []struct {
		name     string
		user     db.User
		post     db.Post
		expected bool
	}{
		{"Autor pode editar seu post", author, post, true},
		{"Outro usuário não pode editar", other, post, false},
		{"Anônimo não pode editar", anon, post, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanEditPost(tt.user, tt.post)
			if result != tt.expected {
				t.Errorf("falha em %s: esperado %v, obtido %v", tt.name, tt.expected, result)
			}
		})
	}
}

func TestCanDeleteComment(t *testing.T) {
	author := db.User{ID: 7}
	other := db.User{ID: 8}
	comment := db.Comment{ID: 1, PostID: 3, AuthorID: 7}

	if !CanDeleteComment(author, comment) {
		t.Error("autor deveria poder remover o próprio comentário")
	}
	if CanDeleteComment(other, comment) {
		t.Error("outro usuário não deveria poder remover o comentário")
	}
	if CanEditComment(other, comment) {
		t.Error("outro usuário não deveria poder editar o comentário")
	}
}

func TestCanUpdateUser(t *testing.T) {
	u1 := db.User{ID: 1}
	u2 := db.User{ID: 2}

	if !CanUpdateUser(u1, u1) {
		t.Error("usuário deveria poder editar o próprio perfil")
	}
	if CanUpdateUser(u1, u2) {
		t.Error("usuário não deveria poder editar perfil alheio")
	}
}
