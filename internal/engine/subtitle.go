package engine

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Timed-caption line patterns.
var (
	vttTimeRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}`)
	srtTimeRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2},\d{3}\s*-->`)
	cueIDRe   = regexp.MustCompile(`^\d+$`)
)

// DecodeSubtitle converts a timed-caption payload into plain text. The
// format is chosen by the hint (a file name or URL) or by sniffing the
// payload; input that is neither WEBVTT nor SRT is assumed to be plain text
// already and returned unchanged.
func DecodeSubtitle(raw, hint string) string {
	switch {
	case strings.Contains(hint, ".vtt"), strings.HasPrefix(strings.TrimSpace(raw), "WEBVTT"):
		return decodeVTT(raw)
	case strings.Contains(hint, ".srt"), srtTimeRe.MatchString(raw):
		return decodeSRT(raw)
	default:
		return raw
	}
}

// decodeVTT drops the WEBVTT header, cue ids and timestamp lines.
func decodeVTT(raw string) string {
	var out []string
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if i == 0 && strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if line == "" || cueIDRe.MatchString(line) {
			continue
		}
		if vttTimeRe.MatchString(line) || strings.Contains(line, "-->") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// decodeSRT drops numeric sequence lines and comma-delimited timestamp lines.
func decodeSRT(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || cueIDRe.MatchString(line) || srtTimeRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// FetchSubtitle downloads and decodes one caption file. Any transport error
// or non-success status yields ("", false) — extraction never aborts over a
// missing subtitle.
func FetchSubtitle(ctx context.Context, rawURL string) (string, bool) {
	metrics.SubtitleRequests.Add(1)

	body, status, err := getBody(ctx, rawURL, nil, 512*1024)
	if err != nil || status/100 != 2 {
		metrics.SubtitleErrors.Add(1)
		slog.Debug("subtitle fetch failed",
			slog.String("url", rawURL), slog.Int("status", status), slog.Any("error", err))
		return "", false
	}
	return DecodeSubtitle(string(body), rawURL), true
}
