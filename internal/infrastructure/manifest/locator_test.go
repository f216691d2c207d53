package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/envsync/internal/domain"
)

func TestLocate_FindsManifestFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "project")
	nested := filepath.Join(root, "src", "lib", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := filepath.Join(root, "package.json")
	if err := os.WriteFile(want, []byte(`{"name":"demo"}`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	got, err := NewLocator("").Locate(nested)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestLocate_PrefersNearestManifest(t *testing.T) {
	tmp := t.TempDir()
	inner := filepath.Join(tmp, "packages", "api")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, dir := range []string{tmp, inner} {
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{}`), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}

	got, err := NewLocator("package.json").Locate(inner)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if got != filepath.Join(inner, "package.json") {
		t.Fatalf("expected nearest manifest, got %s", got)
	}
}

func TestLocate_IgnoresDirectoryWithManifestName(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "a", "envsync-test-manifest.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := NewLocator("envsync-test-manifest.json").Locate(filepath.Join(tmp, "a"))
	if !domain.IsKind(err, domain.KindManifestNotFound) {
		t.Fatalf("expected KindManifestNotFound, got: %v", err)
	}
}

func TestLocate_NotFound(t *testing.T) {
	tmp := t.TempDir()
	start := filepath.Join(tmp, "a", "b")
	_ = os.MkdirAll(start, 0o755)

	_, err := NewLocator("envsync-test-manifest-that-does-not-exist.json").Locate(start)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindManifestNotFound) {
		t.Fatalf("expected KindManifestNotFound, got: %v", err)
	}
	if !errors.Is(err, domain.ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound in chain")
	}
}

func TestLocate_EmptyStartDir(t *testing.T) {
	if _, err := NewLocator("").Locate(""); err == nil {
		t.Fatalf("expected error for empty start dir")
	}
}
