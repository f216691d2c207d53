package manifest

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/ports"
)

// DefaultName is the manifest looked for when none is configured.
const DefaultName = "package.json"

// Locator finds the project manifest by searching upward from a directory.
type Locator struct {
	Name string // defaults to DefaultName
}

// NewLocator returns a Locator for the given manifest file name.
func NewLocator(name string) *Locator {
	if name == "" {
		name = DefaultName
	}
	return &Locator{Name: name}
}

// Locate implements ports.ManifestLocator.
func (l *Locator) Locate(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "manifest.locate",
			Kind: domain.KindFileSystem,
			Err:  errors.New("start directory is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "manifest.locate",
			Kind: domain.KindFileSystem,
			Path: startDir,
			Err:  err,
		}
	}

	cur := filepath.Clean(abs)
	for {
		candidate := filepath.Join(cur, l.Name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "manifest.locate",
				Kind: domain.KindManifestNotFound,
				Path: abs,
				Err:  domain.ErrManifestNotFound,
			}
		}
		cur = parent
	}
}

var _ ports.ManifestLocator = (*Locator)(nil)
