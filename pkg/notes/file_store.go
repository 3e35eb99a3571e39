package notes

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one plain-text file per user, one note per line.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Path returns the note file for userID.
func (s *FileStore) Path(userID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("notes_%s.txt", userID))
}

func (s *FileStore) Append(userID, line string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path(userID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open note file: %w", err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write note: %w", err)
	}
	return f.Close()
}

func (s *FileStore) ReadAll(userID string) ([]string, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.Path(userID))
	if os.IsNotExist(err) {
		return nil, ErrNoNotes
	}
	if err != nil {
		return nil, fmt.Errorf("open note file: %w", err)
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read note file: %w", err)
	}

	return lines, nil
}
