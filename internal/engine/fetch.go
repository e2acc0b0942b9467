package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// contentTypeFilter selects the listing variants the platform exposes for a
// subject. Fixed — the API accepts no other value for this tool's purposes.
const contentTypeFilter = "exercises-notes-videos"

const userAgentBot = "GoExtract/1.0"

// getBody issues one GET through the configured transport — the browser-TLS
// client when available, plain HTTP otherwise — and returns body and status.
func getBody(ctx context.Context, rawURL string, headers map[string]string, limit int64) ([]byte, int, error) {
	if cfg.BrowserClient != nil {
		h := ChromeHeaders()
		for k, v := range headers {
			h[strings.ToLower(k)] = v
		}
		data, _, status, err := cfg.BrowserClient.Do(http.MethodGet, rawURL, h, nil)
		return data, status, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgentBot)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

type pageResult struct {
	items []json.RawMessage
	err   error
}

// FetchSubjectContent walks the paginated contents listing of one subject
// and normalizes every item into records. Pages are probed in parallel
// windows of cfg.PageWindow; probing stops after the first window that
// contains an empty or failed page, bounded by cfg.MaxPages. Returns the
// records plus the number of items skipped as malformed.
func FetchSubjectContent(ctx context.Context, batchID, subjectID string, headers map[string]string) ([]Record, int) {
	var records []Record
	skipped := 0

	for first := 1; first <= cfg.MaxPages; first += cfg.PageWindow {
		window := cfg.PageWindow
		if first+window-1 > cfg.MaxPages {
			window = cfg.MaxPages - first + 1
		}

		results := make([]pageResult, window)
		var wg sync.WaitGroup
		for i := range window {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = fetchContentPage(ctx, batchID, subjectID, first+i, headers)
			}(i)
		}
		wg.Wait()

		exhausted := false
		for i, pr := range results {
			if pr.err != nil {
				metrics.PageErrors.Add(1)
				slog.Warn("page fetch failed",
					slog.String("subject", subjectID), slog.Int("page", first+i), slog.Any("error", pr.err))
				exhausted = true
				continue
			}
			if len(pr.items) == 0 {
				exhausted = true
				continue
			}
			for _, raw := range pr.items {
				recs, skip := itemRecords(raw, batchID)
				records = append(records, recs...)
				skipped += skip
			}
		}
		if exhausted {
			break
		}
	}

	return records, skipped
}

func fetchContentPage(ctx context.Context, batchID, subjectID string, page int, headers map[string]string) pageResult {
	metrics.PageRequests.Add(1)

	u := fmt.Sprintf("%s/batches/%s/subject/%s/contents?page=%d&contentType=%s",
		cfg.BaseURL, batchID, subjectID, page, contentTypeFilter)

	body, status, err := getBody(ctx, u, headers, 4<<20)
	if err != nil {
		return pageResult{err: err}
	}
	if status != http.StatusOK {
		return pageResult{err: fmt.Errorf("contents page status %d", status)}
	}

	var resp contentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return pageResult{err: fmt.Errorf("contents page parse: %w", err)}
	}
	return pageResult{items: resp.Data}
}

// itemRecords normalizes one raw content item. A malformed item yields no
// records and a skip count of 1. A valid item contributes at most one
// primary record (classifier applied to streaming-manifest URLs) plus one
// "notes" record per homework attachment with a non-empty key; attachments
// without a key are dropped silently.
func itemRecords(raw json.RawMessage, batchID string) ([]Record, int) {
	var item contentItem
	if err := json.Unmarshal(raw, &item); err != nil {
		metrics.ItemsSkipped.Add(1)
		slog.Debug("skipping malformed content item", slog.Any("error", err))
		return nil, 1
	}

	var recs []Record

	if item.URL != "" {
		typ := strings.ToLower(item.LectureType)
		if typ == "" {
			typ = "video"
		}
		rec := Record{Name: CleanText(item.Topic), URL: item.URL, Type: typ}
		if IsStreamURL(item.URL) {
			contentID := ""
			if item.VideoDetails != nil {
				contentID = item.VideoDetails.FindKey
			}
			rec.URL, rec.ParentID, rec.ChildID = ResolveStreamURL(item.URL, contentID, batchID)
		}
		recs = append(recs, rec)
	}

	for _, hw := range item.HomeworkIDs {
		for _, att := range hw.AttachmentIDs {
			if att.Key == "" {
				continue
			}
			recs = append(recs, Record{
				Name: CleanText(att.Name),
				URL:  att.BaseURL + att.Key,
				Type: "notes",
			})
		}
	}

	return recs, 0
}
