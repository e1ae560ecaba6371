package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/jucamargo/juju-library/config"
	"github.com/jucamargo/juju-library/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@jujulibrary.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	// Titles and authors are stored normalized, same as the API does it.
	books := []struct {
		title, author, year string
	}{
		{"el principito", "Antoine de Saint-Exupery", "1943"},
		{"cien anos de soledad", "Gabriel Garcia Marquez", "1967"},
		{"the pragmatic programmer", "Hunt and Thomas", "1999"},
	}
	for _, b := range books {
		title := strings.ToUpper(strings.TrimSpace(b.title))
		author := strings.ToUpper(strings.TrimSpace(b.author))
		year := strings.ToUpper(strings.TrimSpace(b.year))
		if _, err := db.Exec(`
			INSERT INTO books (title, author, year, status)
			VALUES ($1, $2, $3, true)
			ON CONFLICT DO NOTHING
		`, title, author, year); err != nil {
			log.Fatalf("failed to seed book %q: %v", b.title, err)
		}
		fmt.Printf("seeded book: %s\n", title)
	}
}
