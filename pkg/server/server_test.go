package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/deckshow/pkg/adapters/logger"
	"github.com/user/deckshow/pkg/adapters/osfilesystem"
	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
)

func serverSlides() []deck.Slide {
	return []deck.Slide{
		{Index: 1, Title: "My Deck", TitleLevel: 1},
		{Index: 2, Title: "Second", TitleLevel: 1},
	}
}

func newTestServer(t *testing.T, runner ExportRunner) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.WorkDir = t.TempDir()
	cfg.BaseURL = "http://localhost:3030"
	cfg.Slides = serverSlides()
	return New(cfg, runner, osfilesystem.New(), logger.NewNoop())
}

func postVideo(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/export/video", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// createJob posts an export request and returns the allocated job id.
func createJob(t *testing.T, srv *Server, body string) string {
	t.Helper()
	rec := postVideo(t, srv, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created["jobId"])
	return created["jobId"]
}

func getJSON(t *testing.T, srv *Server, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func waitForStatus(t *testing.T, srv *Server, id string, want JobStatus) jobView {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var view jobView
		code := getJSON(t, srv, "/export/video/"+id, &view)
		require.Equal(t, http.StatusOK, code)
		if view.Status == want {
			return view
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", id, want)
	return jobView{}
}

func TestCreate_InvalidRequest(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		t.Error("runner must not run for invalid requests")
		return nil
	}))

	rec := postVideo(t, srv, `{"videoFps": 99}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "videoFps")
}

func TestCreate_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return nil
	}))
	rec := postVideo(t, srv, `{"range": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_ReturnsJobID(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return os.WriteFile(opts.Output, []byte("x"), 0o644)
	}))

	rec := postVideo(t, srv, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Contains(t, created, "jobId")
	assert.Len(t, created, 1, "create responds with the job id only")
}

func TestJobLifecycle(t *testing.T) {
	content := []byte("mp4-bytes")
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return os.WriteFile(opts.Output, content, 0o644)
	}))

	id := createJob(t, srv, `{}`)

	done := waitForStatus(t, srv, id, JobDone)
	assert.Equal(t, id, done.JobID)
	assert.Equal(t, "/export/video/"+id+"/download", done.DownloadURL)
	assert.NotEmpty(t, done.File)
	assert.NotNil(t, done.CompletedAt)
	assert.Empty(t, done.Error)

	req := httptest.NewRequest(http.MethodGet, done.DownloadURL, nil)
	dl := httptest.NewRecorder()
	srv.Handler().ServeHTTP(dl, req)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "video/mp4", dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, dl.Header().Get("Content-Disposition"), done.Filename)
	assert.Equal(t, content, dl.Body.Bytes())
}

func TestJobFailure(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return errors.New("browser exploded")
	}))

	id := createJob(t, srv, `{}`)

	failed := waitForStatus(t, srv, id, JobError)
	assert.Contains(t, failed.Error, "browser exploded")
	assert.Empty(t, failed.DownloadURL)

	req := httptest.NewRequest(http.MethodGet, "/export/video/"+id+"/download", nil)
	dl := httptest.NewRecorder()
	srv.Handler().ServeHTTP(dl, req)
	assert.Equal(t, http.StatusNotFound, dl.Code)
}

func TestDownload_MissingArtifact(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return os.WriteFile(opts.Output, []byte("x"), 0o644)
	}))

	id := createJob(t, srv, `{}`)
	done := waitForStatus(t, srv, id, JobDone)
	require.NoError(t, os.Remove(done.File))

	// With the file gone, the job no longer advertises a download.
	again := waitForStatus(t, srv, id, JobDone)
	assert.Empty(t, again.DownloadURL)

	req := httptest.NewRequest(http.MethodGet, "/export/video/"+id+"/download", nil)
	dl := httptest.NewRecorder()
	srv.Handler().ServeHTTP(dl, req)
	assert.Equal(t, http.StatusNotFound, dl.Code)
	assert.Equal(t, "application/json", dl.Header().Get("Content-Type"))
}

func TestGet_UnknownJob(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/export/video/no-such-job", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Export job not found", body["error"])
}

func TestList_NewestFirst(t *testing.T) {
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		return os.WriteFile(opts.Output, []byte("x"), 0o644)
	}))

	var ids []string
	for i := 0; i < 3; i++ {
		id := createJob(t, srv, `{}`)
		ids = append(ids, id)
		waitForStatus(t, srv, id, JobDone)
		time.Sleep(5 * time.Millisecond)
	}

	var listing struct {
		Jobs []jobView `json:"jobs"`
	}
	code := getJSON(t, srv, "/export/video/jobs", &listing)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, listing.Jobs, 3)
	assert.Equal(t, ids[2], listing.Jobs[0].JobID, "newest job first")
	assert.Equal(t, ids[0], listing.Jobs[2].JobID)
}

func TestCreate_ForcesVideoFormat(t *testing.T) {
	var got export.Options
	ran := make(chan struct{})
	srv := newTestServer(t, ExportRunnerFunc(func(ctx context.Context, opts export.Options) error {
		got = opts
		close(ran)
		return os.WriteFile(opts.Output, []byte("x"), 0o644)
	}))

	createJob(t, srv, `{"format":"pdf","videoFps":24}`)

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("runner never ran")
	}
	assert.Equal(t, export.FormatMP4, got.Format)
	assert.Equal(t, 24, got.VideoFPS)
	assert.True(t, got.WithClicks)
}
