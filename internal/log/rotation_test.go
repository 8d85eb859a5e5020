package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "soap.log")

	rf, err := NewRotatingFile(path, 10, 2)
	if err != nil {
		t.Fatalf("NewRotatingFile: %v", err)
	}
	defer rf.Close()

	for _, line := range []string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n", "dddddddd\n"} {
		if _, err := rf.Write([]byte(line)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	if got := readFile(t, path); got != "dddddddd\n" {
		t.Errorf("current = %q", got)
	}
	if got := readFile(t, path+".1"); got != "cccccccc\n" {
		t.Errorf("backup 1 = %q", got)
	}
	if got := readFile(t, path+".2"); got != "bbbbbbbb\n" {
		t.Errorf("backup 2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("backup 3 should not exist, stat err = %v", err)
	}
}

func TestRotatingFile_NoBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soap.log")

	rf, err := NewRotatingFile(path, 4, 0)
	if err != nil {
		t.Fatalf("NewRotatingFile: %v", err)
	}
	defer rf.Close()

	_, _ = rf.Write([]byte("one\n"))
	_, _ = rf.Write([]byte("two\n"))

	if got := readFile(t, path); got != "two\n" {
		t.Errorf("current = %q", got)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("no backup expected")
	}
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	rf, err := NewRotatingFile(filepath.Join(t.TempDir(), "soap.log"), 0, 1)
	if err != nil {
		t.Fatalf("NewRotatingFile: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := rf.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Write after Close = %v, want os.ErrClosed", err)
	}
}
