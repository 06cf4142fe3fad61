package showcase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "https://shop.example.com/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	name, err := store.Save("promo.PNG", strings.NewReader("not-really-an-image"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected lowercased extension, got %q", name)
	}
	if name == "promo.png" {
		t.Fatalf("stored name must be generated, not the upload name")
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "not-really-an-image" {
		t.Fatalf("unexpected content %q", data)
	}

	if got := store.PublicURL(name); got != "https://shop.example.com/uploads/"+name {
		t.Fatalf("unexpected public url %q", got)
	}

	if err := store.Delete(name); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone")
	}
	// Deleting again is a no-op.
	if err := store.Delete(name); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestDiskStoreRejectsBadInput(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Save("malware.exe", strings.NewReader("x")); err == nil {
		t.Fatalf("expected unsupported type error")
	}
	if err := store.Delete("../../etc/passwd"); err == nil {
		t.Fatalf("expected path traversal to be rejected")
	}
}
