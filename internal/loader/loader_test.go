package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lexrag/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadPaths_GlobAndFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "anayasa.txt", "MADDE 1- Metin.\n")
	writeFile(t, dir, "notlar.txt", "Ek notlar.\n")
	writeFile(t, dir, "kapak.pdf", "binary")

	docs, err := LoadPaths([]string{filepath.Join(dir, "*")})
	if err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 txt documents, got %d", len(docs))
	}
	for _, d := range docs {
		if filepath.Ext(d.SourceFile) != ".txt" {
			t.Errorf("non-txt file loaded: %s", d.SourceFile)
		}
	}
}

func TestLoadPaths_NormalizesLineEndings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crlf.txt", "MADDE 1- Satır bir.\r\nSatır iki.\r\n")

	docs, err := LoadPaths([]string{filepath.Join(dir, "crlf.txt")})
	if err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}
	if want := "MADDE 1- Satır bir.\nSatır iki.\n"; docs[0].Text != want {
		t.Errorf("line endings not normalized: %q", docs[0].Text)
	}
}

func TestLoadPaths_SkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dolu.txt", "içerik\n")
	writeFile(t, dir, "bos.txt", "   \n\n")

	docs, err := LoadPaths([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}
	if len(docs) != 1 || docs[0].SourceFile != "dolu.txt" {
		t.Fatalf("expected only the non-empty file, got %+v", docs)
	}
}

func TestLoadPaths_NothingUsable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resim.png", "x")

	_, err := LoadPaths([]string{filepath.Join(dir, "*")})
	if !errors.Is(err, domain.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestLoadPaths_SourceFileIsBasename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "anayasa.txt", "metin\n")

	docs, err := LoadPaths([]string{filepath.Join(dir, "anayasa.txt")})
	if err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}
	if docs[0].SourceFile != "anayasa.txt" {
		t.Errorf("expected basename, got %q", docs[0].SourceFile)
	}
}
