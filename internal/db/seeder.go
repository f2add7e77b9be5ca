package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/PauloHFS/blogum/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// Seed cria dados de demonstração para desenvolvimento local
// (admin / admin123, duas categorias e alguns posts).
func Seed(ctx context.Context, dbConn *sql.DB) error {
	queries := New(dbConn)

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     "admin",
		DisplayName:  "Admin",
		Email:        "admin@admin.com",
		PasswordHash: string(hash),
	})
	if err != nil {
		// Se já existir, ignoramos
		return nil
	}

	general, err := queries.CreateCategory(ctx, CreateCategoryParams{
		Slug:        "general",
		Title:       "General",
		IsPublished: true,
	})
	if err != nil {
		return fmt.Errorf("failed to seed category: %w", err)
	}

	// Categoria despublicada: posts dela não aparecem para ninguém além do autor.
	hidden, err := queries.CreateCategory(ctx, CreateCategoryParams{
		Slug:        "drafts-corner",
		Title:       "Drafts Corner",
		IsPublished: false,
	})
	if err != nil {
		return fmt.Errorf("failed to seed category: %w", err)
	}

	now := time.Now()
	posts := []CreatePostParams{
		{
			AuthorID:    admin.ID,
			CategoryID:  general.ID,
			Title:       "Bem-vindo ao blogum",
			Text:        "Primeiro post do blog. **Markdown** é suportado.",
			PubDate:     now.Add(-24 * time.Hour),
			IsPublished: true,
		},
		{
			AuthorID:    admin.ID,
			CategoryID:  general.ID,
			Title:       "Post agendado",
			Text:        "Este post só aparece para o autor até a data de publicação.",
			PubDate:     now.Add(24 * time.Hour),
			IsPublished: true,
		},
		{
			AuthorID:    admin.ID,
			CategoryID:  hidden.ID,
			Title:       "Rascunho em categoria oculta",
			Text:        "Invisível para o público.",
			PubDate:     now.Add(-time.Hour),
			IsPublished: true,
		},
	}
	for _, p := range posts {
		if _, err := queries.CreatePost(ctx, p); err != nil {
			return fmt.Errorf("failed to seed post: %w", err)
		}
	}

	logging.Get().Info("database seeded successfully",
		slog.String("admin_username", "admin"),
		slog.String("default_password", "admin123"),
	)
	return nil
}
