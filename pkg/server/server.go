package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/ports"
)

// ExportRunner runs one resolved export to completion.
type ExportRunner interface {
	Run(ctx context.Context, opts export.Options) error
}

// ExportRunnerFunc is a function adapter for ExportRunner.
type ExportRunnerFunc func(ctx context.Context, opts export.Options) error

// Run implements ExportRunner.
func (f ExportRunnerFunc) Run(ctx context.Context, opts export.Options) error {
	return f(ctx, opts)
}

// Config holds the job service configuration.
type Config struct {
	// Host is the address to bind to.
	Host string
	// Port is the port to listen on.
	Port int
	// PathPrefix mounts all routes under a sub-path ("" for root).
	PathPrefix string

	// BaseURL is the slide server the exports render from.
	BaseURL string
	// Slides is the deck metadata exposed to export requests.
	Slides []deck.Slide

	// WorkDir is where job artifacts are written.
	WorkDir string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            8087,
		WorkDir:         "deckshow-jobs",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the async export job service. Video exports run in the
// background; clients poll the job until it is done and then download the
// artifact.
type Server struct {
	config     Config
	registry   *Registry
	runner     ExportRunner
	fs         ports.FileSystem
	logger     ports.Logger
	router     *chi.Mux
	httpServer *http.Server
}

// New creates the job service.
func New(config Config, runner ExportRunner, fs ports.FileSystem, logger ports.Logger) *Server {
	s := &Server{
		config:   config,
		registry: NewRegistry(fs),
		runner:   runner,
		fs:       fs,
		logger:   logger.WithComponent("server"),
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.sweepMiddleware)

	routes := func(r chi.Router) {
		r.Route("/export/video", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/jobs", s.handleList)
			r.Get("/{id}", s.handleGet)
			r.Get("/{id}/download", s.handleDownload)
		})
	}
	if config.PathPrefix != "" && config.PathPrefix != "/" {
		router.Route(config.PathPrefix, routes)
	} else {
		routes(router)
	}
	s.router = router
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the job registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.fs.MkdirAll(s.config.WorkDir); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// sweepMiddleware expires finished jobs on every request.
func (s *Server) sweepMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.registry.Sweep()
		next.ServeHTTP(w, r)
	})
}

// jobView is the wire representation of a job.
type jobView struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	File        string     `json:"file,omitempty"`
	Filename    string     `json:"filename"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DurationMs  int64      `json:"durationMs"`
	Error       string     `json:"error,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
}

func (s *Server) view(job VideoJob) jobView {
	v := jobView{
		JobID:      job.ID,
		Status:     job.Status,
		File:       job.OutputPath,
		Filename:   job.Filename,
		StartedAt:  job.StartedAt,
		DurationMs: s.registry.DurationMs(job),
		Error:      job.Error,
	}
	if job.Status != JobRunning {
		completed := job.FinishedAt
		v.CompletedAt = &completed
	}
	if job.Status == JobDone && s.artifactExists(job) {
		v.DownloadURL = path.Join("/", s.config.PathPrefix, "export/video", job.ID, "download")
	}
	return v
}

// artifactExists reports whether the job's output file is still on disk.
func (s *Server) artifactExists(job VideoJob) bool {
	if job.OutputPath == "" {
		return false
	}
	exists, err := s.fs.Exists(job.OutputPath)
	return err == nil && exists
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req export.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}
	req.Format = string(export.FormatMP4)
	req.Output = ""

	opts, err := req.Resolve(s.config.BaseURL, s.config.Slides)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	jobID := uuid.NewString()
	filename := BuildVideoFilename(
		deckTitle(s.config.Slides), req.Range,
		opts.VideoFPS, opts.VideoWidth, opts.VideoHeight,
		time.Now(), jobID,
	)
	opts.Output = filepath.Join(s.config.WorkDir, filename)

	s.registry.Add(VideoJob{
		ID:         jobID,
		OutputPath: opts.Output,
		Filename:   filename,
		Request:    req,
	})

	go s.runJob(jobID, opts)

	writeJSON(w, http.StatusOK, map[string]string{"jobId": jobID})
}

// runJob executes the export detached from the originating request.
func (s *Server) runJob(jobID string, opts export.Options) {
	s.logger.Info("Job %s started: %s", jobID, opts.Output)
	if err := s.runner.Run(context.Background(), opts); err != nil {
		s.logger.Error("Job %s failed: %s", jobID, err)
		s.registry.Fail(jobID, err)
		return
	}
	s.logger.Info("Job %s done", jobID)
	s.registry.Complete(jobID)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	job, ok := s.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("Export job not found"))
		return
	}
	writeJSON(w, http.StatusOK, s.view(job))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	job, ok := s.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("Export job not found"))
		return
	}
	if job.Status != JobDone || !s.artifactExists(job) {
		writeError(w, http.StatusNotFound, errors.New("job artifact not available"))
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.Filename))
	http.ServeFile(w, r, job.OutputPath)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	jobs := s.registry.List()
	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, s.view(job))
	}
	writeJSON(w, http.StatusOK, map[string][]jobView{"jobs": views})
}

// deckTitle is the filename base: the deck's first slide title.
func deckTitle(slides []deck.Slide) string {
	if len(slides) == 0 {
		return ""
	}
	return slides[0].Title
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
