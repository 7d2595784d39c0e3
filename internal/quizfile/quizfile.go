// Package quizfile persists generated quizzes as timestamped JSON files.
package quizfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"quizforge/internal/quizgen"
)

// DefaultDir is the output directory used when none is configured.
const DefaultDir = "quizzes"

// timestampLayout produces the filename timestamp, e.g. 20250115_143027.
const timestampLayout = "20060102_150405"

// PersistenceError reports a failed file operation. The generated quiz
// is still in memory with the caller; nothing is retried.
type PersistenceError struct {
	Op   string // "save" or "load"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Meta carries the request metadata recorded alongside the questions.
type Meta struct {
	Mode    quizgen.Mode
	Subject string
	Model   string
}

// Saver writes quizzes to uniquely named files in a directory.
type Saver struct {
	dir           string
	disambiguator string
	now           func() time.Time
}

// Option configures a Saver.
type Option func(*Saver)

// WithDisambiguator appends a fixed suffix to every filename this Saver
// produces. Concurrent runs use distinct suffixes so that saves within
// the same second cannot target the same name.
func WithDisambiguator(s string) Option {
	return func(sv *Saver) { sv.disambiguator = s }
}

// WithClock overrides the time source used for filenames.
func WithClock(now func() time.Time) Option {
	return func(sv *Saver) { sv.now = now }
}

// NewSaver creates a Saver writing into dir. An empty dir means
// DefaultDir.
func NewSaver(dir string, opts ...Option) *Saver {
	if dir == "" {
		dir = DefaultDir
	}
	s := &Saver{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDisambiguator returns a short random filename suffix for
// concurrent saves.
func NewDisambiguator() string {
	return uuid.NewString()[:8]
}

// Save writes the quiz with its metadata to a new file and returns the
// path. The write is atomic: the content lands in a temporary file that
// is renamed over the final name, so a partial file is never visible.
// Without a disambiguator an existing target is reported as a conflict,
// never overwritten.
func (s *Saver) Save(quiz *quizgen.Quiz, meta Meta) (string, error) {
	now := s.now()
	path := filepath.Join(s.dir, s.filename(meta.Mode, now))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &PersistenceError{Op: "save", Path: s.dir, Err: err}
	}

	if s.disambiguator == "" {
		if _, err := os.Stat(path); err == nil {
			return "", &PersistenceError{Op: "save", Path: path, Err: os.ErrExist}
		}
	}

	saved := quizgen.SavedQuiz{
		Mode:      meta.Mode,
		Subject:   meta.Subject,
		Model:     meta.Model,
		CreatedAt: now,
		Quiz:      *quiz,
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return "", &PersistenceError{Op: "save", Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := writeAtomic(path, data); err != nil {
		return "", &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return path, nil
}

func (s *Saver) filename(mode quizgen.Mode, now time.Time) string {
	ts := now.Format(timestampLayout)
	if s.disambiguator != "" {
		return fmt.Sprintf("quiz_%s_%s_%s.json", mode, ts, s.disambiguator)
	}
	return fmt.Sprintf("quiz_%s_%s.json", mode, ts)
}

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename. The temp file is synced before the rename so a
// crash cannot leave a truncated file under the final name.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".quiz-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Load reads a saved quiz back from disk.
func Load(path string) (*quizgen.SavedQuiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	var saved quizgen.SavedQuiz
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	if len(saved.Questions) == 0 {
		return nil, &PersistenceError{Op: "load", Path: path, Err: fmt.Errorf("no questions in file")}
	}
	return &saved, nil
}
