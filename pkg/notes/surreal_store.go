package notes

import (
	"fmt"
	"log"
	"time"
)

// surrealClient is the part of surreal.Client the store needs.
type surrealClient interface {
	Query(sql string, vars map[string]interface{}) (interface{}, error)
	Create(table string, data interface{}) (interface{}, error)
}

// SurrealStore keeps notes as rows of the SurrealDB "notes" table.
type SurrealStore struct {
	client surrealClient
}

func NewSurrealStore(client surrealClient) *SurrealStore {
	store := &SurrealStore{client: client}
	if err := store.Init(); err != nil {
		// The schema may already exist or the DB may come up later
		log.Printf("Warning: Failed to initialize SurrealDB notes schema: %v", err)
	}
	return store
}

func (s *SurrealStore) Init() error {
	query := `
		DEFINE TABLE IF NOT EXISTS notes SCHEMAFULL;
		DEFINE FIELD IF NOT EXISTS user_id ON notes TYPE string;
		DEFINE FIELD IF NOT EXISTS text ON notes TYPE string;
		DEFINE FIELD IF NOT EXISTS timestamp ON notes TYPE int;
		DEFINE INDEX IF NOT EXISTS notes_user_idx ON notes FIELDS user_id;
	`
	_, err := s.client.Query(query, map[string]interface{}{})
	return err
}

func (s *SurrealStore) Append(userID, line string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	item := map[string]interface{}{
		"user_id":   userID,
		"text":      line,
		"timestamp": time.Now().UnixNano(),
	}
	if _, err := s.client.Create("notes", item); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (s *SurrealStore) ReadAll(userID string) ([]string, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT text, timestamp FROM notes
		WHERE user_id = $user_id
		ORDER BY timestamp ASC;
	`
	result, err := s.client.Query(query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}

	rows, ok := result.([]interface{})
	if !ok || len(rows) == 0 {
		return nil, ErrNoNotes
	}

	var lines []string
	for _, row := range rows {
		rowMap, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		if text, ok := rowMap["text"].(string); ok {
			lines = append(lines, text)
		}
	}

	if len(lines) == 0 {
		return nil, ErrNoNotes
	}
	return lines, nil
}
