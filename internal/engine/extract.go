package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// runTimeFormat matches the platform's Indian audience conventions.
const runTimeFormat = "02-01-2006 03:04 PM"

// authHeaders builds the authenticated header set for platform API calls.
func authHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}

// FetchBatches lists the batches purchased by the token's account.
func FetchBatches(ctx context.Context, token string) ([]BatchInfo, error) {
	metrics.BatchListRequests.Add(1)

	body, status, err := getBody(ctx, cfg.BaseURL+"/batches/my-batches?page=1", authHeaders(token), 4<<20)
	if err != nil {
		return nil, &ExtractError{Stage: StageBatchList, Err: err}
	}
	if status != http.StatusOK {
		return nil, &ExtractError{Stage: StageBatchList, Err: fmt.Errorf("status %d", status)}
	}

	var resp batchListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ExtractError{Stage: StageBatchList, Err: fmt.Errorf("batch list parse: %w", err)}
	}

	batches := make([]BatchInfo, 0, len(resp.Data))
	for _, b := range resp.Data {
		id := b.ID
		if id == "" {
			id = b.AltID
		}
		if id == "" {
			continue
		}
		name := b.Name
		if name == "" {
			name = b.Title
		}
		if name == "" {
			name = "Unnamed"
		}
		batches = append(batches, BatchInfo{ID: id, Name: name})
	}
	return batches, nil
}

// RunExtraction extracts the full content listing of one batch into a
// manifest file at outputPath and returns a run summary. Fatal only at the
// two dependency boundaries — the initial batch-details request and the
// final write; everything in between degrades per item. No file is written
// when the batch-details request fails.
func RunExtraction(ctx context.Context, token, batchID, outputPath string) (ExtractResult, error) {
	start := time.Now()
	headers := authHeaders(token)

	subjects, err := fetchBatchSubjects(ctx, batchID, headers)
	if err != nil {
		return ExtractResult{}, err
	}

	slog.Info("extraction started",
		slog.String("batch", batchID),
		slog.Int("subjects", len(subjects)),
		slog.String("started_at", start.Format(runTimeFormat)),
	)

	type subjectResult struct {
		records []Record
		skipped int
	}

	// One task per subject, each returning its own slice; aggregation
	// happens here, after the fact, so no lock is needed. Manifest order is
	// completion order — not stable across runs.
	ch := make(chan subjectResult, len(subjects))
	for _, s := range subjects {
		go func(s Subject) {
			recs, skipped := FetchSubjectContent(ctx, batchID, s.ID, headers)
			slog.Debug("subject done",
				slog.String("subject", CleanText(s.Name)),
				slog.Int("records", len(recs)),
				slog.Int("skipped", skipped),
			)
			ch <- subjectResult{recs, skipped}
		}(s)
	}

	var records []Record
	skipped := 0
	for range subjects {
		r := <-ch
		records = append(records, r.records...)
		skipped += r.skipped
	}

	if err := WriteManifest(records, outputPath); err != nil {
		return ExtractResult{}, &ExtractError{Stage: StageManifest, Err: err}
	}
	metrics.RecordsEmitted.Add(int64(len(records)))

	res := ExtractResult{
		Path:      outputPath,
		Subjects:  len(subjects),
		Records:   len(records),
		Skipped:   skipped,
		StartedAt: start.Format(runTimeFormat),
		Elapsed:   time.Since(start).Round(time.Millisecond).String(),
	}
	slog.Info("extraction complete",
		slog.String("path", res.Path),
		slog.Int("records", res.Records),
		slog.Int("skipped", res.Skipped),
		slog.String("elapsed", res.Elapsed),
	)
	return res, nil
}

// fetchBatchSubjects is the single fail-fast fetch of a run. A non-200 body
// that still parses as JSON yields whatever subjects it carries (usually
// none) — mirrors the upstream contract, which reports auth errors as JSON.
func fetchBatchSubjects(ctx context.Context, batchID string, headers map[string]string) ([]Subject, error) {
	metrics.BatchDetailRequests.Add(1)

	body, _, err := getBody(ctx, fmt.Sprintf("%s/batches/%s/details", cfg.BaseURL, batchID), headers, 4<<20)
	if err != nil {
		return nil, &ExtractError{Stage: StageBatchDetails, Err: err}
	}

	var resp batchDetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ExtractError{Stage: StageBatchDetails, Err: fmt.Errorf("batch details parse: %w", err)}
	}
	return resp.Data.Subjects, nil
}
