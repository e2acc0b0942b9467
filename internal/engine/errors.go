package engine

import "fmt"

// Stage identifies the dependency boundary where a fatal error occurred.
type Stage string

const (
	StageBatchList    Stage = "batch_list"
	StageBatchDetails Stage = "batch_details"
	StageManifest     Stage = "manifest_write"
)

// ExtractError is a fatal run error tagged with the stage that produced it.
// Per-item failures never surface as ExtractError — they are skipped and
// counted instead.
type ExtractError struct {
	Stage Stage
	Err   error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
