package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMoveFile_MovesAndPreservesContents(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "source")
	destDir := filepath.Join(tmpDir, "destination")
	if err := os.Mkdir(sourceDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(destDir, 0755); err != nil {
		t.Fatal(err)
	}

	original := filepath.Join(sourceDir, "example.txt")
	writeFile(t, original, "hello, world")

	newPath, err := MoveFile(original, destDir)
	if err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(original); !os.IsNotExist(err) {
		t.Errorf("source still exists after move (err = %v)", err)
	}

	if want := filepath.Join(destDir, "example.txt"); newPath != want {
		t.Errorf("MoveFile() = %q, want %q", newPath, want)
	}

	content, err := os.ReadFile(newPath)
	if err != nil {
		t.Fatalf("Failed to read moved file: %v", err)
	}
	if string(content) != "hello, world" {
		t.Errorf("moved content = %q, want %q", content, "hello, world")
	}
}

func TestMoveFile_OverwritesExisting(t *testing.T) {
	tmpDir := t.TempDir()
	destDir := filepath.Join(tmpDir, "dest")
	source := filepath.Join(tmpDir, "report.csv")
	writeFile(t, source, "new")
	writeFile(t, filepath.Join(destDir, "report.csv"), "old")

	newPath, err := MoveFile(source, destDir)
	if err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	content, _ := os.ReadFile(newPath)
	if string(content) != "new" {
		t.Errorf("target content = %q, want %q", content, "new")
	}
}

func TestMoveFile_Preconditions(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	otherFile := filepath.Join(tmpDir, "other.txt")
	dir := filepath.Join(tmpDir, "dir")
	writeFile(t, file, "content")
	writeFile(t, otherFile, "other")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		source      string
		destination string
		want        error
	}{
		{"Missing source", filepath.Join(tmpDir, "missing.txt"), dir, ErrNotFound},
		{"Source is a directory", dir, tmpDir, ErrNotAFile},
		{"Missing destination", file, filepath.Join(tmpDir, "nowhere"), ErrNotFound},
		{"Destination is a file", file, otherFile, ErrNotADirectory},
		{"Source checked before destination", dir, filepath.Join(tmpDir, "nowhere"), ErrNotAFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MoveFile(tt.source, tt.destination)
			if !errors.Is(err, tt.want) {
				t.Fatalf("MoveFile() error = %v, want %v", err, tt.want)
			}

			// A failed precondition leaves the tree untouched
			for _, p := range []string{file, otherFile} {
				if _, err := os.Stat(p); err != nil {
					t.Errorf("%s disappeared after failed move: %v", p, err)
				}
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				t.Errorf("%s changed after failed move", dir)
			}
		})
	}
}
