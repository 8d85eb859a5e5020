package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultMaxSize is the log file size that triggers rotation when none is given.
const DefaultMaxSize = 10 * 1024 * 1024 // 10MB

// RotatingFile is an io.WriteCloser that writes to a file and rotates it when
// it reaches a certain size. Backups are named path.1 (newest) to path.N.
type RotatingFile struct {
	mu sync.Mutex

	path       string
	maxSize    int64 // bytes
	maxBackups int

	file *os.File
	size int64
}

// NewRotatingFile creates a new RotatingFile.
// maxSize uses bytes; values <= 0 mean DefaultMaxSize. maxBackups is the number
// of old log files to keep; 0 truncates the file on rotation.
func NewRotatingFile(path string, maxSize int64, maxBackups int) (*RotatingFile, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxBackups < 0 {
		maxBackups = 0
	}
	rf := &RotatingFile{
		path:       path,
		maxSize:    maxSize,
		maxBackups: maxBackups,
	}

	if err := rf.open(); err != nil {
		return nil, err
	}

	return rf, nil
}

func (rf *RotatingFile) open() error {
	dir := filepath.Dir(rf.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// 0600: log lines may carry endpoint and user names
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	rf.file = f
	rf.size = info.Size()
	return nil
}

// Write implements io.Writer. It writes p to the file, rotating if necessary.
func (rf *RotatingFile) Write(p []byte) (n int, err error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.file == nil {
		return 0, os.ErrClosed
	}

	if rf.size > 0 && rf.size+int64(len(p)) > rf.maxSize {
		if err := rf.rotate(); err != nil {
			return 0, fmt.Errorf("failed to rotate log: %w", err)
		}
	}

	n, err = rf.file.Write(p)
	rf.size += int64(n)
	return n, err
}

// rotate closes the current file, shifts the backups and opens a new file.
// Must be called with mu locked.
func (rf *RotatingFile) rotate() error {
	if err := rf.file.Close(); err != nil {
		return err
	}
	rf.file = nil

	if rf.maxBackups == 0 {
		if err := os.Remove(rf.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove log: %w", err)
		}
		return rf.open()
	}

	// path.N is dropped, path.i moves to path.i+1, path moves to path.1.
	if err := os.Remove(rf.backupName(rf.maxBackups)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old backup: %w", err)
	}
	for i := rf.maxBackups - 1; i >= 1; i-- {
		if err := os.Rename(rf.backupName(i), rf.backupName(i+1)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rename backup: %w", err)
		}
	}
	if err := os.Rename(rf.path, rf.backupName(1)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate current log: %w", err)
	}

	return rf.open()
}

func (rf *RotatingFile) backupName(i int) string {
	return fmt.Sprintf("%s.%d", rf.path, i)
}

// Close implements io.Closer.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.file == nil {
		return nil
	}

	err := rf.file.Close()
	rf.file = nil
	return err
}
