package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestItemRecordsDirectURL(t *testing.T) {
	raw := json.RawMessage(`{
		"topic": "Lecture 1: Kinematics",
		"url": "https://files.host/lec1.mp4",
		"lectureType": "Video"
	}`)

	recs, skipped := itemRecords(raw, "b1")
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Name != "Lecture 1_ Kinematics" {
		t.Errorf("name = %q", r.Name)
	}
	if r.URL != "https://files.host/lec1.mp4" {
		t.Errorf("url = %q", r.URL)
	}
	if r.Type != "video" {
		t.Errorf("type = %q, want video (lowercased)", r.Type)
	}
	if r.ParentID != "" || r.ChildID != "" {
		t.Errorf("direct link should carry no parent/child pair, got %q/%q", r.ParentID, r.ChildID)
	}
}

func TestItemRecordsStreamURL(t *testing.T) {
	raw := json.RawMessage(`{
		"topic": "Live class",
		"url": "https://host/stream/master.mpd&parentId=p9&childId=c9",
		"videoDetails": {"findKey": "fk1"}
	}`)

	recs, _ := itemRecords(raw, "b1")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.URL != "https://host/stream/master.mpd" {
		t.Errorf("resolved url = %q", r.URL)
	}
	if r.ParentID != "p9" || r.ChildID != "c9" {
		t.Errorf("pair = %q/%q, want p9/c9", r.ParentID, r.ChildID)
	}
	if r.Type != "video" {
		t.Errorf("type = %q, want default video", r.Type)
	}
}

func TestItemRecordsAttachments(t *testing.T) {
	raw := json.RawMessage(`{
		"topic": "DPP 3",
		"url": "https://files.host/dpp3.mp4",
		"homeworkIds": [{
			"_id": "hw1",
			"attachmentIds": [
				{"name": "DPP 3 Solutions", "baseUrl": "https://cdn.host/", "key": "dpp3.pdf"},
				{"name": "Broken upload", "baseUrl": "https://cdn.host/", "key": ""}
			]
		}]
	}`)

	recs, skipped := itemRecords(raw, "b1")
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0 (empty key is a silent drop)", skipped)
	}
	// Primary record plus one attachment; the keyless attachment yields nothing.
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	att := recs[1]
	if att.Type != "notes" {
		t.Errorf("attachment type = %q, want notes", att.Type)
	}
	if att.URL != "https://cdn.host/dpp3.pdf" {
		t.Errorf("attachment url = %q", att.URL)
	}
	if att.Name != "DPP 3 Solutions" {
		t.Errorf("attachment name = %q", att.Name)
	}
}

func TestItemRecordsMalformed(t *testing.T) {
	raw := json.RawMessage(`{"topic": "bad", "url": {"nested": "object"}}`)

	recs, skipped := itemRecords(raw, "b1")
	if len(recs) != 0 {
		t.Errorf("malformed item produced %d records", len(recs))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestItemRecordsNoURL(t *testing.T) {
	raw := json.RawMessage(`{"topic": "placeholder, nothing uploaded yet"}`)

	recs, skipped := itemRecords(raw, "b1")
	if len(recs) != 0 || skipped != 0 {
		t.Errorf("got %d records, %d skipped; want 0, 0", len(recs), skipped)
	}
}

func TestFetchSubjectContentStopsOnEmptyPage(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/batches/b1/subject/s1/contents" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("contentType") != "exercises-notes-videos" {
			t.Errorf("unexpected contentType %q", r.URL.Query().Get("contentType"))
		}
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"data": [
				{"topic": "L1", "url": "https://files.host/l1.mp4"},
				{"topic": "L2", "url": "https://files.host/l2.mp4"}
			]}`)
			return
		}
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer srv.Close()

	Init(Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		PageWindow: 3,
		MaxPages:   30,
	})

	recs, skipped := FetchSubjectContent(context.Background(), "b1", "s1", nil)
	if len(recs) != 2 {
		t.Errorf("got %d records, want 2", len(recs))
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	// First window (pages 1-3) contains empty pages, so probing must stop there.
	if got := requests.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestFetchSubjectContentPageErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"data": [{"topic": "L1", "url": "https://files.host/l1.mp4"}]}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	Init(Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		PageWindow: 2,
		MaxPages:   30,
	})

	recs, _ := FetchSubjectContent(context.Background(), "b1", "s1", nil)
	if len(recs) != 1 {
		t.Errorf("got %d records, want 1 (failed page must not lose the good one)", len(recs))
	}
}
