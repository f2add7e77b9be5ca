package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/PauloHFS/blogum/internal/validator"
	"github.com/PauloHFS/blogum/internal/view"
	"golang.org/x/crypto/bcrypt"
)

type registerData struct {
	Username    string
	DisplayName string
	Email       string
}

func handleRegisterForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	page := newPage(r, "Registrar")
	page.Data = registerData{}
	return view.Render(w, http.StatusOK, "register", page)
}

func handleRegister(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	form := registerData{
		Username:    r.FormValue("username"),
		DisplayName: r.FormValue("display_name"),
		Email:       r.FormValue("email"),
	}
	password := r.FormValue("password")

	logging.AddToEvent(r.Context(),
		slog.String("operation", "register"),
		slog.String("username", form.Username),
	)

	page := newPage(r, "Registrar")
	page.Data = form

	validation := validator.ValidateRegistration(form.Username, form.Email, password)
	if !validation.Valid {
		for _, e := range validation.Errors {
			page.Errors[e.Field] = e.Message
		}
		return view.Render(w, http.StatusOK, "register", page)
	}

	// Só ErrNotFound significa username livre; erro real de banco não pode
	// cair no caminho de criação.
	if _, err := deps.Queries.GetUserByUsername(r.Context(), form.Username); err == nil {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "username_taken"),
		)
		page.Errors["username"] = "Este username já está em uso"
		return view.Render(w, http.StatusOK, "register", page)
	} else if !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := deps.Queries.CreateUser(r.Context(), db.CreateUserParams{
		Username:     form.Username,
		DisplayName:  form.DisplayName,
		Email:        form.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("created_user_id", user.ID),
	)

	deps.SessionManager.Put(r.Context(), "user_id", user.ID)
	http.Redirect(w, r, routes.Home, http.StatusSeeOther)
	return nil
}

type loginData struct {
	Username string
}

func handleLoginForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	page := newPage(r, "Entrar")
	page.Data = loginData{}
	return view.Render(w, http.StatusOK, "login", page)
}

func handleLogin(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	username := r.FormValue("username")
	password := r.FormValue("password")

	logging.AddToEvent(r.Context(),
		slog.String("operation", "login"),
		slog.String("username", username),
	)

	page := newPage(r, "Entrar")
	page.Data = loginData{Username: username}

	if username == "" || password == "" {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "missing_credentials"),
		)
		page.Errors["form"] = "Username e senha são obrigatórios"
		return view.Render(w, http.StatusOK, "login", page)
	}

	user, err := deps.Queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "user_not_found"),
		)
		page.Errors["form"] = "Usuário ou senha inválidos"
		return view.Render(w, http.StatusOK, "login", page)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "invalid_password"),
			slog.Int64("user_id", user.ID),
		)
		page.Errors["form"] = "Usuário ou senha inválidos"
		return view.Render(w, http.StatusOK, "login", page)
	}

	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("user_id", user.ID),
	)

	deps.SessionManager.Put(r.Context(), "user_id", user.ID)
	http.Redirect(w, r, routes.Home, http.StatusSeeOther)
	return nil
}

func handleLogout(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	if err := deps.SessionManager.Destroy(r.Context()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	http.Redirect(w, r, routes.Home, http.StatusSeeOther)
	return nil
}
