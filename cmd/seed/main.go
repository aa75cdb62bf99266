package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/config"
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/Goodidea-backend-camp/hpb-blog-files/pkg/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// samplePosts are written on every run; existing titles are left alone.
var samplePosts = []store.Post{
	{Title: "hello", Content: "world"},
	{Title: "welcome", Content: "This blog stores every post as a plain file named after its title."},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fsys := afero.NewOsFs()
	if err := storage.Prepare(fsys, cfg.Storage.Dir); err != nil {
		return fmt.Errorf("post directory not usable: %w", err)
	}

	fmt.Printf("Seeding %s...\n", cfg.Storage.Dir)

	postStore := store.NewFilePostStore(fsys, cfg.Storage.Dir)
	for _, post := range samplePosts {
		err := postStore.CreatePost(ctx, post)
		switch {
		case err == nil:
			fmt.Printf("SUCCESS: %s\n", post.Title)
		case errors.Is(err, store.ErrPostExists):
			fmt.Printf("SKIPPED: %s (already exists)\n", post.Title)
		default:
			fmt.Printf("ERROR: %s: %v\n", post.Title, err)
		}
	}

	fmt.Println("Seed completed")
	return nil
}
