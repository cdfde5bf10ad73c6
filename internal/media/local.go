// Package media stores uploaded images on local disk and serves them under /uploads/.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is where stored uploads are served from.
const URLPrefix = "/uploads/"

var ErrEmpty = errors.New("uploaded file is empty")

// Store saves raw upload bytes and hands back a stable reference.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

type Local struct {
	dir string
	now func() time.Time
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Local{dir: dir, now: time.Now}, nil
}

func (l *Local) Dir() string { return l.dir }

// Owns reports whether ref points at a file this store wrote.
func Owns(ref string) bool { return strings.HasPrefix(ref, URLPrefix) }

// Save writes the upload as "<unix-ms>-<name>" with whitespace replaced by underscores.
func (l *Local) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := strings.Join(strings.Fields(filepath.Base(filename)), "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	stamp := l.now().UnixMilli()
	stored := fmt.Sprintf("%d-%s", stamp, name)

	f, err := os.OpenFile(filepath.Join(l.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	for i := 1; errors.Is(err, fs.ErrExist) && i < 100; i++ {
		stored = fmt.Sprintf("%d-%d-%s", stamp, i, name)
		f, err = os.OpenFile(filepath.Join(l.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = ErrEmpty
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("save upload: %w", err)
	}
	return URLPrefix + stored, nil
}

// Delete removes a stored upload. References this store does not own, and
// files that are already gone, are not errors.
func (l *Local) Delete(ctx context.Context, ref string) error {
	if !Owns(ref) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(ref, URLPrefix))
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}
