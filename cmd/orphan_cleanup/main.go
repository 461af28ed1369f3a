package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"freelahub/internal/database"
	"freelahub/internal/repository"
)

// orphan_cleanup lists accounts left without a role profile by the old
// non-transactional signup, and removes them when -delete is given.
func main() {
	del := flag.Bool("delete", false, "delete the orphaned accounts instead of only listing them")
	flag.Parse()

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	orphans, err := users.FindOrphans(ctx)
	if err != nil {
		log.Fatalf("find orphans failed: %v", err)
	}

	ids := make([]int64, 0, len(orphans))
	for _, u := range orphans {
		log.Printf("orphan: id=%d email=%s tipo=%s created_at=%s", u.ID, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
		ids = append(ids, u.ID)
	}

	if !*del {
		log.Printf("orphan cleanup dry run: found=%d (rerun with -delete to remove)", len(ids))
		return
	}

	n, err := users.DeleteOrphans(ctx, ids)
	if err != nil {
		log.Fatalf("delete orphans failed: %v", err)
	}
	log.Printf("orphan cleanup completed: found=%d deleted=%d", len(ids), n)
}
