package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// imageUpload builds a multipart file header the way gin hands it to handlers
func imageUpload(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func pngUpload(t *testing.T) *multipart.FileHeader {
	return imageUpload(t, "picture.PNG", "image/png", []byte("\x89PNG\r\n\x1a\nfake"))
}

// storedPath maps a /uploads URL back to a file under root
func storedPath(root, url string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
