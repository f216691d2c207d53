package envfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/ports"
)

const defaultMode fs.FileMode = 0o644

// Store reads env files and rewrites them atomically under an exclusive lock.
type Store struct {
	lockDir string
}

// NewStore returns a Store keeping its lock files in the OS temp directory.
func NewStore() *Store {
	return &Store{lockDir: os.TempDir()}
}

// Read implements ports.EnvStore. A missing file yields an empty map.
func (s *Store) Read(path string) (domain.EnvValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.EnvValues{}, nil
		}
		return nil, &domain.OpError{Op: "envfile.read", Kind: domain.KindFileSystem, Path: path, Err: err}
	}
	return domain.ParseEnv(string(data)), nil
}

// Write implements ports.EnvStore. The content lands in a temp file in the
// same directory which is then renamed over path, so readers never see a
// partial file. An existing file's permissions are kept.
func (s *Store) Write(path, content string) (err error) {
	lock := flock.New(s.lockPath(path))
	if err := lock.Lock(); err != nil {
		return &domain.OpError{Op: "envfile.lock", Kind: domain.KindFileSystem, Path: path, Err: err}
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = &domain.OpError{Op: "envfile.unlock", Kind: domain.KindFileSystem, Path: path, Err: uerr}
		}
	}()

	mode := defaultMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err := writeAtomic(path, []byte(content), mode); err != nil {
		return &domain.OpError{Op: "envfile.write", Kind: domain.KindFileSystem, Path: path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// lockPath keys the lock on the absolute env path so that two runs from
// different working directories still contend for the same lock.
func (s *Store) lockPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(s.lockDir, "envsync-"+hex.EncodeToString(sum[:8])+".lock")
}

var _ ports.EnvStore = (*Store)(nil)
