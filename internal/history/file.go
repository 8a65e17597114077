package history

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes the transcript and replaces filename with it atomically:
// readers see either the previous file or the complete new one.
func WriteFile(filename string, t *Transcript) error {
	data, err := EncodeToBytes(t)
	if err != nil {
		return err
	}
	return writeAtomic(filename, data, 0o644)
}

// ReadFile decodes a transcript from filename
func ReadFile(filename string) (*Transcript, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// writeAtomic writes to a temp file in the target directory then renames it
// over filename. The temp file must share the filesystem for the rename to
// be atomic.
func writeAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
