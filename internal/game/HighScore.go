package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ScoreStore is durable storage for the single high score value.
type ScoreStore interface {
	ReadHighScore() (int, error)
	WriteHighScore(score int) error
	Close() error
}

// HighScoreService is the best-effort front for a ScoreStore. The high score
// is cosmetic: read failures count as zero and write failures are dropped.
type HighScoreService struct {
	store ScoreStore
	// mu makes Submit's read-compare-write atomic for games sharing the service.
	mu sync.Mutex
}

// NewHighScoreService wraps store. A nil store gives a service that always
// loads zero and saves nowhere.
func NewHighScoreService(store ScoreStore) *HighScoreService {
	return &HighScoreService{store: store}
}

func (s *HighScoreService) Load() int {
	if s == nil || s.store == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *HighScoreService) load() int {
	score, err := s.store.ReadHighScore()
	if err != nil {
		log.Debug("High score unavailable, using 0", "error", err)
		return 0
	}
	return score
}

// Save overwrites the stored value unconditionally.
func (s *HighScoreService) Save(score int) {
	if s == nil || s.store == nil || score < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(score)
}

func (s *HighScoreService) save(score int) {
	if err := s.store.WriteHighScore(score); err != nil {
		log.Debug("High score not persisted", "score", score, "error", err)
	}
}

// Submit saves score if it beats the stored value. Concurrent submits are
// serialised so a lower score can never replace a higher one.
func (s *HighScoreService) Submit(score int) (previous int, recorded bool) {
	if s == nil || s.store == nil {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous = s.load()
	if score <= previous {
		return previous, false
	}
	s.save(score)
	return previous, true
}

func (s *HighScoreService) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

var errNegativeScore = errors.New("negative high score")

// FileStore keeps the high score as the decimal text of one integer.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) ReadHighScore() (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	raw, err := os.ReadFile(fs.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read high score file %s: %w", fs.path, err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse high score file %s: %w", fs.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("high score file %s: %w", fs.path, errNegativeScore)
	}
	return score, nil
}

func (fs *FileStore) WriteHighScore(score int) error {
	if score < 0 {
		return errNegativeScore
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.WriteFile(fs.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("failed to write high score file %s: %w", fs.path, err)
	}
	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
