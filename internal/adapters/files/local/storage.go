// Package local guarda los uploads en disco y los expone bajo Media.BaseURL.
package local

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/files"

	"github.com/google/uuid"
)

// extensión por tipo detectado
var extensions = map[string]string{
	"image/jpeg":          ".jpg",
	"image/png":           ".png",
	"application/pdf":     ".pdf",
	"text/xml":            ".gpx",
	"application/xml":     ".gpx",
	"application/gpx+xml": ".gpx",
}

type Storage struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) *Storage {
	return &Storage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Store detecta el tipo por contenido (no confía en el nombre ni en el
// Content-Type del cliente) y lo compara contra allowed.
func (s *Storage) Store(_ context.Context, kind files.Kind, data []byte, allowed []string) (string, error) {
	ct := detect(data)
	if !slices.Contains(allowed, ct) {
		return "", apperr.Validation("invalid type")
	}

	name := uuid.NewString() + extensions[ct]
	dir := filepath.Join(s.dir, filepath.FromSlash(string(kind)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.baseURL + "/" + string(kind) + "/" + name, nil
}

// detect: http.DetectContentType devuelve "text/xml; charset=utf-8" para un
// GPX; nos quedamos con el media type. Un GPX sin prólogo <?xml sale como
// text/plain y se revisa a mano.
func detect(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	if ct == "text/plain" && strings.HasPrefix(strings.TrimSpace(string(data[:min(len(data), 512)])), "<gpx") {
		return "application/gpx+xml"
	}
	return ct
}
