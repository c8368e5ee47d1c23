package gallery

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/user/neongallery/internal/composite"
)

func writePNG(t *testing.T, root, rel string) {
	t.Helper()
	require.NoError(t, composite.Save(filepath.Join(root, filepath.FromSlash(rel)), image.NewNRGBA(image.Rect(0, 0, 2, 2))))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "thinking/token_stream.png")
	writePNG(t, root, "thumbs/thinking/token_stream.png")
	writePNG(t, root, "neural_network.png")
	writePNG(t, root, "misc/extra_art.png")
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	cat, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.NotContains(t, cat.Categories, ThumbDir)

	thinking := cat.Categories["thinking"]
	require.Len(t, thinking, 1)
	assert.Equal(t, "Token Stream", thinking[0].Title)
	assert.NotEmpty(t, thinking[0].Description)
	assert.Equal(t, "thumbs/thinking/token_stream.png", thinking[0].Thumbnail)
	assert.Positive(t, thinking[0].Size)

	legacy := cat.Categories["legacy"]
	require.Len(t, legacy, 1)
	assert.Equal(t, "neural_network.png", legacy[0].File)
	assert.Empty(t, legacy[0].Thumbnail)

	misc := cat.Categories["misc"]
	require.Len(t, misc, 1)
	assert.Equal(t, "Extra Art", misc[0].Title)

	assert.Equal(t, []string{"neural_network.png", "misc/extra_art.png", "thinking/token_stream.png"}, cat.Files())
}

func TestTitleize(t *testing.T) {
	tests := map[string]string{
		"token_stream":    "Token Stream",
		"élan_vital":      "Élan Vital",
		"über-graph":      "Über Graph",
		"__leading__tail": "Leading Tail",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, titleize(in), in)
	}
}

func TestScanMissingRoot(t *testing.T) {
	cat, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Zero(t, cat.Len())
}

func TestVersion(t *testing.T) {
	at := time.Date(2025, 7, 20, 18, 5, 33, 0, time.UTC)
	assert.Equal(t, "20250720.1805", Version(at))

	t.Setenv("GITHUB_SHA", "")
	root := t.TempDir()
	require.NoError(t, WriteVersion(root, NewVersionInfo(at, 3)))
	v, err := ReadVersion(root)
	require.NoError(t, err)
	assert.Equal(t, "20250720.1805", v.Version)
	assert.Equal(t, "local", v.Commit)
	assert.Equal(t, 3, v.Images)
	assert.True(t, at.Equal(v.BuildTime))
}

func TestWriteSite(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "thinking/token_stream.png")
	require.NoError(t, WriteVersion(root, NewVersionInfo(time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC), 1)))

	cat, err := WriteSite(root)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	index, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	html := string(index)
	assert.Contains(t, html, "<title>"+SiteTitle+"</title>")
	for _, id := range Sections {
		assert.Contains(t, html, `id="`+id+`"`)
	}
	assert.Contains(t, html, `src="thinking/token_stream.png?v=20250102.0304"`)
	assert.Contains(t, html, "Token Stream")

	for _, name := range Assets {
		assert.FileExists(t, filepath.Join(root, name))
	}
	js, err := os.ReadFile(filepath.Join(root, "gallery.js"))
	require.NoError(t, err)
	assert.Contains(t, string(js), "const version = '20250102.0304';")
}

func TestHandler(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "memory/knowledge_graph.png")
	s, err := NewServer(root, nil)
	require.NoError(t, err)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memory/knowledge_graph.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store, no-cache, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var cat Catalogue
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cat))
	require.Len(t, cat.Categories["memory"], 1)
	assert.Equal(t, "Knowledge Graph", cat.Categories["memory"][0].Title)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWatchPicksUpNewImages(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "system"), 0o755))
	s, err := NewServer(root, nil)
	require.NoError(t, err)
	require.Zero(t, s.Catalogue().Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register the root.
	time.Sleep(50 * time.Millisecond)
	writePNG(t, root, "system/process_threads.png")

	assert.Eventually(t, func() bool {
		return len(s.Catalogue().Categories["system"]) == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestServeStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<title>"+SiteTitle+"</title>"), 0o644))
	s, err := NewServer(root, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln, time.Second) }()

	transport := &http.Transport{}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), SiteTitle)
	transport.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
