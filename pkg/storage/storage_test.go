package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestStore_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	src := writeSource(t, root, "essay.pdf", "content")

	s := New(filepath.Join(root, "submissions"))
	path, err := s.Save(src, SubmissionName(7, "stu-1", src))
	if err != nil {
		t.Fatalf("Save should succeed: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "7_stu-1_") || !strings.HasSuffix(base, "_essay.pdf") {
		t.Errorf("unexpected stored name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "content" {
		t.Fatalf("stored file mismatch: %q %v", data, err)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove should succeed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be gone")
	}
	if err := s.Remove(path); err != nil {
		t.Errorf("removing a missing file should not fail: %v", err)
	}
}

func TestStore_SaveMissingSource(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save("/does/not/exist.txt", "x.txt"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestStore_SaveNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	first := writeSource(t, filepath.Join(root, "a"), "slides.pdf", "week one")
	second := writeSource(t, filepath.Join(root, "b"), "slides.pdf", "week two")
	s := New(filepath.Join(root, "store"))

	p1, err := s.Save(first, "fixed.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(second, "fixed.pdf"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if data, _ := os.ReadFile(p1); string(data) != "week one" {
		t.Errorf("first file was clobbered: %q", data)
	}
}

func TestStore_SameBasenameGetsDistinctPaths(t *testing.T) {
	root := t.TempDir()
	first := writeSource(t, filepath.Join(root, "w1"), "slides.pdf", "week one")
	second := writeSource(t, filepath.Join(root, "w2"), "slides.pdf", "week two")
	s := New(filepath.Join(root, "store"))

	p1, err := s.Save(first, MaterialName("CS101", first))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.Save(second, MaterialName("CS101", second))
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Fatalf("both uploads stored at %s", p1)
	}

	if err := s.Remove(p2); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(p1)
	if err != nil || string(data) != "week one" {
		t.Errorf("first upload should survive removal of the second: %q %v", data, err)
	}
}

func TestStore_Fetch(t *testing.T) {
	root := t.TempDir()
	src := writeSource(t, root, "notes.txt", "hello")
	s := New(filepath.Join(root, "store"))
	stored, err := s.Save(src, MaterialName("CS101", src))
	if err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(root, "downloads", "notes.txt")
	if err := s.Fetch(stored, dst); err != nil {
		t.Fatalf("Fetch should succeed: %v", err)
	}
	if data, _ := os.ReadFile(dst); string(data) != "hello" {
		t.Errorf("fetched content = %q", data)
	}
	if err := s.Fetch(stored, dst); !errors.Is(err, ErrExists) {
		t.Errorf("second fetch to the same target should fail with ErrExists, got %v", err)
	}
}

func TestMaterialName(t *testing.T) {
	a := MaterialName("CS101", "/tmp/notes/week1.pdf")
	b := MaterialName("CS101", "/tmp/other/week1.pdf")
	if !strings.HasPrefix(a, "CS101_") || !strings.HasSuffix(a, "_week1.pdf") {
		t.Errorf("unexpected name: %s", a)
	}
	if a == b {
		t.Error("names for the same basename must differ")
	}
}
