package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirNotFound is returned when none of the candidate directories exist.
var ErrDirNotFound = errors.New("migration directory not found")

// Runner applies the SQL files of one directory to one database.
type Runner struct {
	m         *migrate.Migrate
	sourceURL string
}

// Version is the state recorded in schema_migrations.
type Version struct {
	Version uint
	Dirty   bool
	None    bool
}

func NewRunner(dir, dbURL string) (*Runner, error) {
	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Runner{m: m, sourceURL: sourceURL}, nil
}

func (r *Runner) SourceURL() string {
	return r.sourceURL
}

// Up applies all pending migrations. It reports false when nothing changed.
func (r *Runner) Up() (bool, error) {
	return changed(r.m.Up())
}

// Down rolls back the given number of migrations.
func (r *Runner) Down(steps int) (bool, error) {
	if steps <= 0 {
		return false, fmt.Errorf("down steps must be > 0")
	}
	return changed(r.m.Steps(-steps))
}

func (r *Runner) Goto(target uint) (bool, error) {
	return changed(r.m.Migrate(target))
}

func (r *Runner) Force(version int) error {
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

func (r *Runner) Version() (Version, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Version{None: true}, nil
	}
	if err != nil {
		return Version{}, fmt.Errorf("read version: %w", err)
	}
	return Version{Version: version, Dirty: dirty}, nil
}

func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	if srcErr != nil {
		srcErr = fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		dbErr = fmt.Errorf("close migration db: %w", dbErr)
	}
	return errors.Join(srcErr, dbErr)
}

// ResolveDir returns the absolute path of the first existing directory among
// candidates. Empty candidates are ignored.
func ResolveDir(candidates ...string) (string, error) {
	checked := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		checked = append(checked, candidate)

		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("%w (checked %s)", ErrDirNotFound, strings.Join(checked, ", "))
}

func changed(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
