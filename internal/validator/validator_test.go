package validator

import (
	"strings"
	"testing"
	"time"
)

func TestValidatePostForm(t *testing.T) {
	valid := PostForm{
		Title:      "Um título",
		Text:       "Corpo do post",
		CategoryID: 1,
		PubDate:    time.Now(),
	}

	t.Run("FormValido", func(t *testing.T) {
		result := ValidatePostForm(valid)
		if !result.Valid {
			t.Errorf("form válido rejeitado: %+v", result.Errors)
		}
	})

	t.Run("TituloNoLimitePassa", func(t *testing.T) {
		f := valid
		f.Title = strings.Repeat("a", 255)
		if result := ValidatePostForm(f); !result.Valid {
			t.Errorf("título de 255 caracteres deveria passar: %+v", result.Errors)
		}
	})

	t.Run("MultiplosCamposAcumulamErros", func(t *testing.T) {
		result := ValidatePostForm(PostForm{})
		if result.Valid {
			t.Fatal("form vazio aceito")
		}
		for _, field := range []string{"title", "text", "category", "pub_date"} {
			if result.FieldError(field) == "" {
				t.Errorf("esperado erro no campo %s, obtido %+v", field, result.Errors)
			}
		}
	})

	tests := []struct {
		name      string
		mutate    func(f PostForm) PostForm
		wantField string
	}{
		{"TituloVazio", func(f PostForm) PostForm { f.Title = ""; return f }, "title"},
		{"TituloLongo", func(f PostForm) PostForm { f.Title = strings.Repeat("a", 256); return f }, "title"},
		{"TextoVazio", func(f PostForm) PostForm { f.Text = ""; return f }, "text"},
		{"SemCategoria", func(f PostForm) PostForm { f.CategoryID = 0; return f }, "category"},
		{"CategoriaNegativa", func(f PostForm) PostForm { f.CategoryID = -1; return f }, "category"},
		{"SemPubDate", func(f PostForm) PostForm { f.PubDate = time.Time{}; return f }, "pub_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePostForm(tt.mutate(valid))
			if result.Valid {
				t.Fatal("form inválido aceito")
			}
			if result.FieldError(tt.wantField) == "" {
				t.Errorf("esperado erro no campo %s, obtido %+v", tt.wantField, result.Errors)
			}
		})
	}
}

func TestValidateCommentForm(t *testing.T) {
	if result := ValidateCommentForm(CommentForm{Text: "oi"}); !result.Valid {
		t.Errorf("comentário válido rejeitado: %+v", result.Errors)
	}
	if result := ValidateCommentForm(CommentForm{Text: ""}); result.Valid {
		t.Error("comentário vazio aceito")
	}
	if result := ValidateCommentForm(CommentForm{Text: strings.Repeat("x", 2001)}); result.Valid {
		t.Error("comentário acima do limite aceito")
	}
}

func TestValidateRegistration(t *testing.T) {
	result := ValidateRegistration("alice", "alice@example.com", "password123")
	if !result.Valid {
		t.Errorf("registro válido rejeitado: %+v", result.Errors)
	}

	result = ValidateRegistration("a!", "nope", "short")
	if result.Valid {
		t.Fatal("registro inválido aceito")
	}
	for _, field := range []string{"username", "email", "password"} {
		if result.FieldError(field) == "" {
			t.Errorf("esperado erro no campo %s", field)
		}
	}
}

func TestValidateProfileForm(t *testing.T) {
	if result := ValidateProfileForm(ProfileForm{DisplayName: "Alice", Email: "alice@example.com"}); !result.Valid {
		t.Errorf("perfil válido rejeitado: %+v", result.Errors)
	}
	if result := ValidateProfileForm(ProfileForm{Email: "invalido"}); result.Valid {
		t.Error("email inválido aceito")
	}
}
