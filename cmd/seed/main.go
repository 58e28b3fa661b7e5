// Package main provides a tool to seed the database with demo posts.
//
// Usage:
//
//	DB_PATH=~/quill/db go run ./cmd/seed
//	DB_PATH=~/quill/db go run ./cmd/seed --count 30
//	DB_PATH=~/quill/db go run ./cmd/seed --create-author  # Also create a demo author
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/quillapp/quill-server/internal/auth"
	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/id"
	"github.com/quillapp/quill-server/internal/store"
)

var (
	count        = flag.Int("count", 25, "Number of demo posts to create")
	createAuthor = flag.Bool("create-author", false, "Create a demo author account (demo@example.com / demo-password)")
)

var demoTags = []string{"go", "writing", "notes", "projects", "meta"}

var demoBodies = []string{
	"Short thoughts for a short day.",
	"## On keeping a blog\n\nWriting regularly is harder than writing well. The trick is to lower the stakes until publishing feels routine.",
	"Some posts are just a single paragraph, and that is fine. Not everything needs a thesis, three sections, and a conclusion.",
	"```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n\nThe smallest programs make the best examples.",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/quill/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *createAuthor {
		seedAuthor(ctx, s)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for i := 0; i < *count; i++ {
		tags := []string{}
		if rng.Float32() < 0.7 {
			tags = append(tags, demoTags[rng.Intn(len(demoTags))])
		}

		post := &domain.Post{
			ID:    id.NewDocumentID(),
			Title: fmt.Sprintf("Demo post %d", i+1),
			Body:  demoBodies[rng.Intn(len(demoBodies))],
			Tags:  tags,
		}
		post.InitTimestamps()

		if err := s.CreatePost(ctx, post); err != nil {
			log.Printf("Failed to create post %q: %v", post.Title, err)
			continue
		}
		created++
	}

	fmt.Printf("Created %d posts\n", created)
}

func seedAuthor(ctx context.Context, s *store.Store) {
	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		log.Fatalf("Failed to generate user ID: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        "demo@example.com",
		DisplayName:  "Demo Author",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Users.Create(ctx, user.ID, user); err != nil {
		log.Printf("Failed to create demo author (may already exist): %v", err)
		return
	}

	fmt.Println("Created demo author: demo@example.com / demo-password")
}
