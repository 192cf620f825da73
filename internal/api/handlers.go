package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/tocmap/internal/outline"
	"github.com/dgallion1/tocmap/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleResolve accepts a multipart upload and queues a resolution job.
// The "pdf" part is required. Entries come either pre-extracted, as a
// JSON "entries" part or form value, or via a "toc_pages" range naming
// the printed table-of-contents pages for the LLM to read.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		jsonError(w, "pdf file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "failed to read pdf", http.StatusInternalServerError)
		return
	}
	if len(pdfData) == 0 {
		jsonError(w, "pdf file is empty", http.StatusBadRequest)
		return
	}

	var entries []outline.Entry
	tocRange := strings.TrimSpace(r.FormValue("toc_pages"))

	if ef, _, err := r.FormFile("entries"); err == nil {
		defer ef.Close()
		data, err := io.ReadAll(ef)
		if err != nil {
			jsonError(w, "failed to read entries", http.StatusInternalServerError)
			return
		}
		entries, err = outline.ParseEntries(data)
		if err != nil {
			jsonError(w, "invalid entries: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else if raw := r.FormValue("entries"); raw != "" {
		entries, err = outline.ParseEntries([]byte(raw))
		if err != nil {
			jsonError(w, "invalid entries: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	switch {
	case len(entries) == 0 && tocRange == "":
		jsonError(w, "provide either entries or toc_pages", http.StatusBadRequest)
		return
	case len(entries) > 0 && tocRange != "":
		jsonError(w, "entries and toc_pages are mutually exclusive", http.StatusBadRequest)
		return
	case tocRange != "" && s.claude == nil:
		jsonError(w, "toc_pages requires a configured LLM; submit pre-extracted entries instead", http.StatusBadRequest)
		return
	}

	filename := sanitizeFilename(header.Filename)
	job := pipeline.NewJob(filename, pdfData, entries, tocRange)
	if err := s.orchestrator.Submit(job); err != nil {
		s.log.Warn("job rejected", "error", err)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("job queued",
		"job_id", job.ID,
		"filename", filename,
		"size_bytes", len(pdfData),
		"entries", len(entries),
		"toc_pages", tocRange,
	)
	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.ID,
		"status": string(pipeline.StatusQueued),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.jobFromURL(w, r)
	if job == nil {
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleJobResult returns the resolved entries for a completed job.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job := s.jobFromURL(w, r)
	if job == nil {
		return
	}
	view := job.Snapshot()
	if view.Status != pipeline.StatusCompleted {
		jsonError(w, fmt.Sprintf("job is %s, not completed", view.Status), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":  view.ID,
		"entries": job.Results(),
	})
}

// handleJobExport returns the raw entry list (titles, printed pages,
// levels) as re-importable JSON, available as soon as entries are known.
func (s *Server) handleJobExport(w http.ResponseWriter, r *http.Request) {
	job := s.jobFromURL(w, r)
	if job == nil {
		return
	}
	entries := job.EntryList()
	if len(entries) == 0 {
		jsonError(w, "no entries available yet", http.StatusConflict)
		return
	}
	data, err := outline.ExportEntries(entries)
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleJobCancel(w http.ResponseWriter, r *http.Request) {
	job := s.jobFromURL(w, r)
	if job == nil {
		return
	}
	job.Cancel()
	writeJSON(w, http.StatusOK, map[string]string{
		"job_id": job.ID,
		"status": "cancelling",
	})
}

// handleOutlineImport converts an uploaded document (JSON, Markdown,
// HTML, or DOCX) into the raw entry shape without running resolution.
func (s *Server) handleOutlineImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	importer, err := outline.ImporterFor(header.Filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries, err := importer.Import(file)
	if err != nil {
		code := http.StatusUnprocessableEntity
		if errors.Is(err, outline.ErrValidation) {
			code = http.StatusBadRequest
		}
		jsonError(w, fmt.Sprintf("import %s: %s", sanitizeFilename(header.Filename), err), code)
		return
	}

	data, err := outline.ExportEntries(entries)
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// jobFromURL looks up the job named in the URL, writing a 404 and
// returning nil when it does not exist.
func (s *Server) jobFromURL(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	id := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(id)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil
	}
	return job
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
