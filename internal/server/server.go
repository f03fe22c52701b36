// Package server exposes the processing pipeline over HTTP: document upload,
// per-stage status, results, and field-record downloads.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/joseph-ayodele/doc-processor/constants"
	"github.com/joseph-ayodele/doc-processor/internal/common"
	"github.com/joseph-ayodele/doc-processor/internal/entity"
	"github.com/joseph-ayodele/doc-processor/internal/export"
	"github.com/joseph-ayodele/doc-processor/internal/pipeline"
)

// Runner is the pipeline as the server sees it.
type Runner interface {
	RunUpload(ctx context.Context, r io.Reader) (entity.PipelineResult, error)
	Tracker() *pipeline.Tracker
}

// Server holds the in-memory session: the latest result and the stage tracker.
// One document is processed at a time; a second upload while a run is in
// flight is rejected.
type Server struct {
	logger   *slog.Logger
	runner   Runner
	exporter *export.Service
	maxBytes int64

	runMu sync.Mutex // serializes pipeline runs

	mu     sync.RWMutex
	result *entity.PipelineResult
}

func New(logger *slog.Logger, runner Runner, exporter *export.Service, cfg common.ServerConfig) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 32
	}
	return &Server{
		logger:   logger.With("component", "server"),
		runner:   runner,
		exporter: exporter,
		maxBytes: int64(maxMB) << 20,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/documents", s.handleUpload)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/result", s.handleResult)
	mux.HandleFunc("GET /api/fields", s.handleFieldsDownload)
	mux.HandleFunc("GET /api/fields/export", s.handleFieldsExport)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return s.logRequests(mux)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.runMu.TryLock() {
		writeError(w, http.StatusConflict, "a document is already being processed")
		return
	}
	defer s.runMu.Unlock()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing form file \"file\"")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Warn("upload.close_failed", "error", err)
		}
	}()

	if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
		writeError(w, http.StatusBadRequest, "unsupported file type: "+header.Filename)
		return
	}

	s.logger.Info("upload.start", "filename", header.Filename, "bytes", header.Size)

	result, err := s.runner.RunUpload(r.Context(), file)
	if err != nil {
		// The stage-qualified message identifies where the run stopped.
		s.logger.Error("upload.processing_failed", "filename", header.Filename, "error", err)
		status := http.StatusInternalServerError
		if common.IsExtractionError(err) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	s.mu.Lock()
	s.result = &result
	s.mu.Unlock()

	s.logger.Info("upload.ok", "filename", header.Filename, "degraded_fields", result.Fields.Degraded())
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stages": s.runner.Tracker().Snapshot(),
	})
}

func (s *Server) handleResult(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.lastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no document processed yet")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFieldsDownload(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.lastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no document processed yet")
		return
	}
	b, err := s.exporter.FieldsJSON(res.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="extracted_fields.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleFieldsExport(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.lastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no document processed yet")
		return
	}
	b, err := s.exporter.FieldsXLSX(res.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extracted_fields.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) lastResult() (entity.PipelineResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return entity.PipelineResult{}, false
	}
	return *s.result, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		slog.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
