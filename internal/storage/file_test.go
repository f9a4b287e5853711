package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type testDoc struct {
	Theme string `toml:"theme"`
	Count int    `toml:"count"`
}

func TestFileAdapter_RoundTrip(t *testing.T) {
	adapter, err := NewFileAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileAdapter returned error: %v", err)
	}

	if err := adapter.Save("cart", testDoc{Theme: "dark", Count: 3}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	var got testDoc
	ok, err := adapter.Load("cart", &got)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !ok {
		t.Fatal("Load ok = false, want true after Save")
	}
	if got.Theme != "dark" || got.Count != 3 {
		t.Fatalf("Load = %#v, want saved document", got)
	}
}

func TestFileAdapter_MissingDocumentIsNotAnError(t *testing.T) {
	adapter, err := NewFileAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileAdapter returned error: %v", err)
	}

	var got testDoc
	ok, err := adapter.Load("nope", &got)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if ok {
		t.Fatal("Load ok = true, want false for missing document")
	}
}

func TestFileAdapter_CorruptDocumentDegradesGracefully(t *testing.T) {
	dir := t.TempDir()
	adapter, err := NewFileAdapter(dir)
	if err != nil {
		t.Fatalf("NewFileAdapter returned error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cart.toml"), []byte("{{{{not toml"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	var got testDoc
	ok, err := adapter.Load("cart", &got)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if ok {
		t.Fatal("Load ok = true, want false for corrupt document")
	}
}

func TestFileAdapter_DeleteIsIdempotent(t *testing.T) {
	adapter, err := NewFileAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileAdapter returned error: %v", err)
	}
	if err := adapter.Save("session", testDoc{Theme: "x"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := adapter.Delete("session"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := adapter.Delete("session"); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}

	var got testDoc
	ok, err := adapter.Load("session", &got)
	if err != nil || ok {
		t.Fatalf("Load after delete = (%v, %v), want (false, nil)", ok, err)
	}
}
