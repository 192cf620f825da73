package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/tocmap/internal/extract"
	"github.com/dgallion1/tocmap/internal/match"
	"github.com/dgallion1/tocmap/internal/outline"
	"github.com/dgallion1/tocmap/internal/pagedata"
	"github.com/dgallion1/tocmap/internal/pagenum"
)

// Worker runs the resolution pipeline for a single job.
type Worker struct {
	claude *extract.ClaudeClient
	log    *slog.Logger
}

func NewWorker(claude *extract.ClaudeClient, log *slog.Logger) *Worker {
	return &Worker{claude: claude, log: log}
}

// Process runs a job end to end: extract page data, build the printed
// page map, obtain entries (supplied or LLM-read), resolve. The job owns
// a derived context so it can be cancelled individually.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	job.mu.Lock()
	job.cancel = cancel
	job.mu.Unlock()

	// Phase 1: page extraction.
	job.SetStatus(StatusExtracting, "extracting pages")
	src, err := pagedata.NewPDFSource(bytes.NewReader(job.pdfData))
	if err != nil {
		w.fail(job, log, "open pdf", err)
		return
	}
	defer src.Close()

	records, err := pagedata.Extract(ctx, src, job.SetPageProgress)
	if err != nil {
		w.fail(job, log, "extract pages", err)
		return
	}
	log.Info("extracted pages", "pages", len(records))

	// Phase 2: entries, either supplied up front or read off the printed
	// TOC pages by the LLM.
	entries := job.EntryList()
	if len(entries) == 0 {
		job.SetStatus(StatusReadingTOC, "reading printed toc")
		entries, err = w.readPrintedTOC(ctx, job, records)
		if err != nil {
			w.fail(job, log, "read toc", err)
			return
		}
	}
	entries = outline.NormalizeLevels(entries)
	job.SetEntries(entries)
	if len(entries) == 0 {
		w.fail(job, log, "entries", fmt.Errorf("%w: no entries to resolve", outline.ErrValidation))
		return
	}

	// Phase 3: printed-number map with gap inference.
	job.SetStatus(StatusMapping, "mapping printed numbers")
	pageMap := buildPageMap(records)

	// Phase 4: resolution.
	job.SetStatus(StatusResolving, "resolving entries")
	pages := make([]string, len(records))
	for i, r := range records {
		pages[i] = r.Text
	}
	results, err := match.NewResolver(pages, pageMap).Resolve(ctx, entries)
	if err != nil {
		w.fail(job, log, "resolve", err)
		return
	}

	resolved := make([]ResolvedEntry, len(results))
	for i, r := range results {
		resolved[i] = ResolvedEntry{
			Title:      entries[i].Title,
			Level:      entries[i].Level,
			PageIndex:  r.PageIndex,
			Confidence: r.Confidence,
		}
	}
	job.SetResults(resolved)
	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "entries", len(resolved))
}

// readPrintedTOC concatenates the text of the selected TOC pages and has
// the LLM read it into entries.
func (w *Worker) readPrintedTOC(ctx context.Context, job *Job, records []pagedata.PageRecord) ([]outline.Entry, error) {
	if w.claude == nil {
		return nil, fmt.Errorf("%w: no entries supplied and no LLM configured", outline.ErrValidation)
	}
	pages, err := outline.ParsePageRange(job.tocRange, len(records))
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, p := range pages {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(records[p-1].Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, fmt.Errorf("%w: selected toc pages contain no text", outline.ErrValidation)
	}
	return w.claude.ExtractOutline(ctx, sb.String())
}

// buildPageMap chooses the trusted position, builds the printed map, and
// fills detection gaps from merged label candidates.
func buildPageMap(records []pagedata.PageRecord) *pagenum.Map {
	top := make([]int, len(records))
	bottom := make([]int, len(records))
	labels := make([][]int, len(records))
	for i, r := range records {
		top[i] = r.CandidateTop
		bottom[i] = r.CandidateBottom
		labels[i] = pagenum.LabelCandidates(r.TopLines, r.BottomLines, r.CandidateTop, r.CandidateBottom)
	}

	m := pagenum.BuildMap(top, bottom)
	m.Fill(pagenum.InferLabels(labels, len(records)))
	return m
}

func (w *Worker) fail(job *Job, log *slog.Logger, phase string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Info("job cancelled", "phase", phase)
		job.SetStatus(StatusCancelled, phase)
		return
	}
	log.Error("job failed", "phase", phase, "error", err)
	job.AddError(fmt.Sprintf("%s: %s", phase, err))
	job.SetStatus(StatusFailed, phase)
}
