package engine

import (
	"fmt"
	"os"
	"strings"
)

// footerBanner terminates every manifest: a blank line, then three fixed lines.
const footerBanner = "━━━━━━━━━━━━━━━\nExtracted via GoExtract\n━━━━━━━━━━━━━━━\n"

// FormatRecordLine serializes one record as "[type] name:url", with the
// parent/child pair appended as query parameters when both are present.
// URLs are emitted as-is; consumers split on the first ':' only.
func FormatRecordLine(r Record) string {
	prefix := ""
	if r.Type != "" {
		prefix = "[" + r.Type + "] "
	}
	if r.ParentID != "" && r.ChildID != "" {
		return fmt.Sprintf("%s%s:%s&parentId=%s&childId=%s", prefix, r.Name, r.URL, r.ParentID, r.ChildID)
	}
	return fmt.Sprintf("%s%s:%s", prefix, r.Name, r.URL)
}

// WriteManifest writes one line per record plus the footer banner,
// overwriting any existing file at path. Record order is whatever the
// caller aggregated. Fails only on the underlying storage medium.
func WriteManifest(records []Record, path string) error {
	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(FormatRecordLine(r))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(footerBanner)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
