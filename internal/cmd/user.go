package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PauloHFS/blogum/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func RunCreateUser() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: create-user <username> <email> <password>")
		os.Exit(1)
	}
	username := os.Args[2]
	email := os.Args[3]
	password := os.Args[4]

	dbConn, err := initDB()
	if err != nil {
		panic(err)
	}
	defer dbConn.Close()

	if err := db.RunMigrations(context.Background(), dbConn); err != nil {
		fmt.Printf("failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("failed to hash password: %v\n", err)
		os.Exit(1)
	}

	queries := db.New(dbConn)
	user, err := queries.CreateUser(context.Background(), db.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		fmt.Printf("failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user created: id=%d username=%s\n", user.ID, user.Username)
}
