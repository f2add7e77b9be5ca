package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/routes"
	"golang.org/x/crypto/bcrypt"
)

// serveWithSession roda o handler dentro do LoadAndSave, necessário para os
// handlers que gravam na sessão.
func serveWithSession(deps HandlerDeps, h AppHandler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	deps.SessionManager.LoadAndSave(Handle(deps, h)).ServeHTTP(w, r)
	return w
}

func TestHandleRegister(t *testing.T) {
	deps := setupTestDeps(t)

	t.Run("RegistroValidoCriaUsuarioERedireciona", func(t *testing.T) {
		values := url.Values{
			"username": {"carol"},
			"email":    {"carol@example.com"},
			"password": {"senha-segura-123"},
		}
		w := serveWithSession(deps, handleRegister, formRequest(routes.Register, values))

		assertRedirect(t, w, routes.Home)

		user, err := deps.Queries.GetUserByUsername(context.Background(), "carol")
		if err != nil {
			t.Fatalf("usuário não persistido: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-segura-123")); err != nil {
			t.Error("hash de senha não confere")
		}
	})

	t.Run("UsernameDuplicadoReexibeComErro", func(t *testing.T) {
		values := url.Values{
			"username": {"carol"},
			"email":    {"outra@example.com"},
			"password": {"senha-segura-123"},
		}
		w := serveWithSession(deps, handleRegister, formRequest(routes.Register, values))

		if w.Code != http.StatusOK {
			t.Fatalf("esperado 200 com re-render, obtido %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "já está em uso") {
			t.Error("mensagem de username duplicado deveria aparecer")
		}
	})

	t.Run("ErroDeBancoVira500NaoUsernameLivre", func(t *testing.T) {
		broken := setupTestDeps(t)
		broken.DB.Close()

		values := url.Values{
			"username": {"eve"},
			"email":    {"eve@example.com"},
			"password": {"senha-segura-123"},
		}
		w := serveWithSession(broken, handleRegister, formRequest(routes.Register, values))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("lookup com erro de banco deveria virar 500, obtido %d", w.Code)
		}
	})

	t.Run("SenhaCurtaNaoRegistra", func(t *testing.T) {
		values := url.Values{
			"username": {"dave"},
			"email":    {"dave@example.com"},
			"password": {"curta"},
		}
		w := serveWithSession(deps, handleRegister, formRequest(routes.Register, values))

		if w.Code != http.StatusOK {
			t.Fatalf("esperado 200 com re-render, obtido %d", w.Code)
		}
		if _, err := deps.Queries.GetUserByUsername(context.Background(), "dave"); err == nil {
			t.Error("usuário com senha inválida não deveria ter sido criado")
		}
	})
}

func TestHandleLogin(t *testing.T) {
	deps := setupTestDeps(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-segura-123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if _, err := deps.Queries.CreateUser(ctx, db.CreateUserParams{
		Username: "alice", Email: "alice@example.com", PasswordHash: string(hash),
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	t.Run("CredenciaisValidasRedirecionam", func(t *testing.T) {
		values := url.Values{"username": {"alice"}, "password": {"senha-segura-123"}}
		w := serveWithSession(deps, handleLogin, formRequest(routes.Login, values))
		assertRedirect(t, w, routes.Home)
	})

	t.Run("SenhaErradaReexibeGenerico", func(t *testing.T) {
		values := url.Values{"username": {"alice"}, "password": {"errada-errada"}}
		w := serveWithSession(deps, handleLogin, formRequest(routes.Login, values))

		if w.Code != http.StatusOK {
			t.Fatalf("esperado 200 com re-render, obtido %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Usuário ou senha inválidos") {
			t.Error("mensagem genérica de credenciais deveria aparecer")
		}
	})

	// Usuário inexistente e senha errada têm a mesma mensagem.
	t.Run("UsuarioInexistenteMesmaMensagem", func(t *testing.T) {
		values := url.Values{"username": {"ninguem"}, "password": {"qualquer-coisa"}}
		w := serveWithSession(deps, handleLogin, formRequest(routes.Login, values))

		if !strings.Contains(w.Body.String(), "Usuário ou senha inválidos") {
			t.Error("mensagem genérica de credenciais deveria aparecer")
		}
	})

	t.Run("CamposVaziosReexibem", func(t *testing.T) {
		w := serveWithSession(deps, handleLogin, formRequest(routes.Login, url.Values{}))
		if !strings.Contains(w.Body.String(), "obrigatórios") {
			t.Error("mensagem de campos obrigatórios deveria aparecer")
		}
	})
}
