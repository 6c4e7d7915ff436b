package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const airplanesDir = "uploads/airplanes"

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// AirplaneImagePath returns the relative path under the media root:
// uploads/airplanes/<slug(call sign)>-<uuid><ext>.
func AirplaneImagePath(callSign, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}
	name := Slugify(callSign)
	if name == "" {
		name = "airplane"
	}
	return fmt.Sprintf("%s/%s-%s%s", airplanesDir, name, uuid.NewString(), ext), nil
}

// Store writes files below a root directory.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Save(rel string, src io.Reader) error {
	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write media file: %w", err)
	}
	return f.Close()
}

func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
