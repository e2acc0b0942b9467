package engine

import "encoding/json"

// --- Platform API wire types ---
//
// This schema is inferred from observed traffic, not published. Every field
// is optional on the wire; absent fields degrade to empty values.

type batchListResponse struct {
	Data []batchListItem `json:"data"`
}

// batchListItem tolerates both id/name spellings seen in the wild.
type batchListItem struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type batchDetailsResponse struct {
	Data struct {
		Subjects []Subject `json:"subjects"`
	} `json:"data"`
}

// Subject is one subject of a batch, as returned by /batches/{id}/details.
type Subject struct {
	ID   string `json:"_id"`
	Name string `json:"subject"`
}

// contentsResponse keeps items raw so one malformed item never poisons the
// rest of its page; see itemRecords.
type contentsResponse struct {
	Data []json.RawMessage `json:"data"`
}

type contentItem struct {
	Topic        string        `json:"topic"`
	URL          string        `json:"url"`
	LectureType  string        `json:"lectureType"`
	VideoDetails *videoDetails `json:"videoDetails"`
	HomeworkIDs  []homework    `json:"homeworkIds"`
}

type videoDetails struct {
	FindKey string `json:"findKey"`
}

type homework struct {
	ID            string       `json:"_id"`
	AttachmentIDs []attachment `json:"attachmentIds"`
}

type attachment struct {
	Name    string `json:"name"`
	BaseURL string `json:"baseUrl"`
	Key     string `json:"key"`
}

// --- Extraction output types ---

// Record is one manifest entry: a lecture, a note attachment or a subtitle
// link. Name is already sanitized; ParentID/ChildID are set only for
// streaming-manifest URLs.
type Record struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
	ChildID  string `json:"child_id,omitempty"`
}

// BatchInfo is one purchased batch from /batches/my-batches.
type BatchInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExtractResult summarises one completed extraction run.
type ExtractResult struct {
	Path      string `json:"path"`
	Subjects  int    `json:"subjects"`
	Records   int    `json:"records"`
	Skipped   int    `json:"skipped"`
	StartedAt string `json:"started_at"`
	Elapsed   string `json:"elapsed"`
}

// --- MCP tool input/output types ---

type BatchListInput struct {
	Token string `json:"token" jsonschema:"MadeEasy bearer token from the platform's web session (never a password or OTP)"`
}

type BatchListOutput struct {
	Batches []BatchInfo `json:"batches"`
	Count   int         `json:"count"`
}

type ExtractInput struct {
	Token      string `json:"token" jsonschema:"MadeEasy bearer token from the platform's web session"`
	BatchID    string `json:"batch_id" jsonschema:"Batch id as listed by list_batches"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"Manifest file path (default: <batch_id>.txt)"`
}

type SubtitleInput struct {
	URL string `json:"url" jsonschema:"Caption file URL (.vtt or .srt)"`
}

type SubtitleOutput struct {
	Text  string `json:"text"`
	Found bool   `json:"found"`
}
