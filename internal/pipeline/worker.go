package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/aaerminer/internal/charstream"
	"github.com/dgallion1/aaerminer/internal/depparse"
	"github.com/dgallion1/aaerminer/internal/docindex"
	"github.com/dgallion1/aaerminer/internal/document"
	"github.com/dgallion1/aaerminer/internal/entity"
	"github.com/dgallion1/aaerminer/internal/filings"
	"github.com/dgallion1/aaerminer/internal/segment"
	"github.com/dgallion1/aaerminer/internal/temporal"
)

// Worker processes a single document job.
type Worker struct {
	fetcher  *Fetcher
	source   charstream.Source
	anchors  segment.Anchors
	parser   *depparse.Client
	temporal *temporal.Parser
	guesser  *entity.Guesser
	filings  *filings.Client
	index    *docindex.Client
	log      *slog.Logger

	maxParseChars int
}

func NewWorker(fetcher *Fetcher, source charstream.Source, parser *depparse.Client, tp *temporal.Parser, guesser *entity.Guesser, fc *filings.Client, index *docindex.Client, log *slog.Logger, maxParseChars int) *Worker {
	return &Worker{
		fetcher:       fetcher,
		source:        source,
		anchors:       segment.DefaultAnchors(),
		parser:        parser,
		temporal:      tp,
		guesser:       guesser,
		filings:       fc,
		index:         index,
		log:           log,
		maxParseChars: maxParseChars,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Fetch (skipped for uploaded documents).
	data := job.FileData()
	if len(data) == 0 {
		job.SetStatus(StatusFetching, "fetching")
		if !strings.HasSuffix(strings.ToLower(job.URL), ".pdf") {
			log.Info("skipping non-pdf release", "url", job.URL)
			job.SetStatus(StatusSkipped, "not_pdf")
			w.markScraped(ctx, job, log)
			return
		}
		var err error
		data, err = w.fetcher.Fetch(ctx, job.URL)
		if err != nil {
			log.Error("fetch failed", "url", job.URL, "error", err)
			job.AddError(fmt.Sprintf("fetch: %s", err))
			job.SetStatus(StatusFailed, "fetching")
			return
		}
		job.SetFileData(data)
	}

	// Phase 2: Read the PDF into a positioned character stream.
	job.SetStatus(StatusReading, "reading")
	chars, err := w.source.Extract(bytes.NewReader(data))
	if err != nil {
		log.Error("pdf read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}
	pages := 0
	if len(chars) > 0 {
		pages = chars[len(chars)-1].Page + 1
	}
	job.SetDocStats(pages, len(chars))

	// Phase 3: Reconstruct bold spans and segment the document.
	job.SetStatus(StatusSegmenting, "segmenting")
	text, idx := segment.BuildIndex(chars)
	segs, err := segment.Segment(text, idx, w.anchors)
	if err != nil {
		log.Error("segmentation failed", "error", err)
		job.AddError(fmt.Sprintf("segment: %s", err))
		job.SetStatus(StatusFailed, "segmenting")
		return
	}
	if segs.SummaryDegraded {
		log.Warn("summary boundaries degraded, covering remainder of document")
	}

	// Phase 4: Identify the respondent company.
	job.SetStatus(StatusEntity, "entity")
	company := ""
	sectionParse, err := w.parseWithRetry(ctx, log, segs.Section.Text)
	if err != nil {
		log.Warn("entity parse failed, falling back to header slice", "error", err)
	} else {
		company = w.guesser.FromEntities(sectionParse.Entities)
	}
	if company == "" {
		if name, ok := w.guesser.FromSection(segs.Section.Text); ok {
			company = name
		}
	}
	if company == "" {
		log.Info("no respondent company identified, skipping")
		job.SetStatus(StatusSkipped, "no_company")
		w.markScraped(ctx, job, log)
		return
	}

	// Phase 5: Resolve the company against the filings search.
	job.SetStatus(StatusFilings, "filings")
	filing, err := w.filings.LatestTenK(ctx, company)
	if err != nil {
		if errors.Is(err, filings.ErrNoFilings) {
			log.Info("no filings matched company", "company", company)
		} else {
			log.Error("filings lookup failed", "company", company, "error", err)
		}
		job.AddError(fmt.Sprintf("filings: %s", err))
		job.SetStatus(StatusFailed, "filings")
		return
	}

	// Phase 6: Dependency-parse the summary.
	job.SetStatus(StatusParsing, "parsing")
	summaryParse, err := w.parseWithRetry(ctx, log, segs.Summary.Text)
	if err != nil {
		log.Error("summary parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 7: Infer the misreporting interval.
	job.SetStatus(StatusInferring, "inferring")
	interval, mentions, found := w.temporal.InferInterval(summaryParse.Tokens)
	job.SetMentionCount(mentions.Count())
	if !found {
		log.Info("no interval inferred", "mentions", mentions.Count())
	}

	ex := document.Extraction{
		DocID:           job.DocID,
		URL:             job.URL,
		CIK:             filing.CIK,
		CompanyName:     company,
		Ticker:          filing.Ticker,
		Section:         segs.Section.Text,
		Contains21C:     segs.ContainsRiskMarker,
		SummaryDegraded: segs.SummaryDegraded,
		Interval:        interval,
		IntervalFound:   found,
		MentionCount:    mentions.Count(),
	}

	// Phase 8: Store the extraction and mark the document scraped.
	job.SetStatus(StatusStoring, "storing")
	if err := w.index.PutResult(ctx, ex); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	w.markScraped(ctx, job, log)

	job.SetResult(ex)
	job.SetStatus(StatusCompleted, "done")
	log.Info("extraction complete",
		"company", company,
		"cik", filing.CIK,
		"interval_found", found,
		"mentions", mentions.Count())
}

// parseWithRetry calls the dependency parser, retrying transient failures
// with backoff.
func (w *Worker) parseWithRetry(ctx context.Context, log *slog.Logger, text string) (*depparse.Result, error) {
	var result *depparse.Result
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		result, lastErr = w.parser.ParseAll(ctx, text, w.maxParseChars)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable parse error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, lastErr
}

// markScraped flips the index flag; failures are logged, not fatal, since
// the document will simply be handed out again next sweep.
func (w *Worker) markScraped(ctx context.Context, job *Job, log *slog.Logger) {
	if job.DocID == "" {
		return
	}
	if err := w.index.MarkScraped(ctx, job.DocID); err != nil {
		log.Warn("mark scraped failed", "error", err)
	}
}
