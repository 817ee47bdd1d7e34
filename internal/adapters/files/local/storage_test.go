package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/files"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestStore_WritesUnderKindAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "/media/")

	url, err := s.Store(context.Background(), files.KindAvatar, pngHeader, files.AvatarTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/dogs/avatars/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	name := filepath.Base(url)
	got, err := os.ReadFile(filepath.Join(dir, "dogs", "avatars", name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestStore_RejectsByContentNotName(t *testing.T) {
	s := New(t.TempDir(), "/media")

	_, err := s.Store(context.Background(), files.KindAvatar, []byte("%PDF-1.7 fake"), files.AvatarTypes)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "invalid type")

	url, err := s.Store(context.Background(), files.KindInvoice, []byte("%PDF-1.7 fake"), files.InvoiceTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".pdf"))
}

func TestStore_GPX(t *testing.T) {
	s := New(t.TempDir(), "/media")

	withProlog := []byte(`<?xml version="1.0"?><gpx version="1.1"></gpx>`)
	url, err := s.Store(context.Background(), files.KindGPX, withProlog, files.GPXTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".gpx"))

	bare := []byte(`<gpx version="1.1"></gpx>`)
	_, err = s.Store(context.Background(), files.KindGPX, bare, files.GPXTypes)
	assert.NoError(t, err)
}
