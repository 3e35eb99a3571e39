package main

import (
	"fmt"
	"log"

	"pocketbot/pkg/cache"
	"pocketbot/pkg/config"
	"pocketbot/pkg/lastq"
	"pocketbot/pkg/notes"
	"pocketbot/pkg/surreal"
)

// openNoteStore builds the configured notes backend. The returned func releases it.
func openNoteStore(cfg *config.Config, secrets *config.Secrets) (notes.Store, func(), error) {
	switch cfg.Notes.Backend {
	case "sqlite":
		store, err := notes.OpenSQLite(cfg.Notes.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Storing notes in SQLite at %s", cfg.Notes.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				log.Printf("Error closing notes database: %v", err)
			}
		}, nil

	case "surreal":
		if secrets.SurrealHost == "" {
			return nil, nil, fmt.Errorf("SURREAL_DB_HOST is not set")
		}
		url := secrets.SurrealURL()
		log.Printf("Connecting to SurrealDB at %s (NS: %s, DB: %s)", url, secrets.SurrealNamespace, secrets.SurrealDatabase)
		client, err := surreal.NewClient(url, secrets.SurrealUser, secrets.SurrealPass, secrets.SurrealNamespace, secrets.SurrealDatabase)
		if err != nil {
			return nil, nil, err
		}
		return notes.NewSurrealStore(client), client.Close, nil

	default:
		log.Printf("Storing notes as files in %s", cfg.Notes.Dir)
		return notes.NewFileStore(cfg.Notes.Dir), func() {}, nil
	}
}

func openQuestionStore(cfg *config.Config, secrets *config.Secrets) (lastq.Store, func(), error) {
	if cfg.LastQuestion.Backend != "redis" {
		return lastq.NewMemoryStore(), func() {}, nil
	}

	c, err := cache.NewRedisCache(secrets.RedisURL, cfg.LastQuestion.KeyPrefix)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Keeping last questions in Redis")
	return lastq.NewRedisStore(c), func() {
		if err := c.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}, nil
}
