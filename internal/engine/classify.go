package engine

import (
	"regexp"
	"strings"
)

// cdnHost marks direct CDN assets whose URLs must not be rewritten.
const cdnHost = "cloudfront.net"

var (
	parentIDRe = regexp.MustCompile(`parentId=([^&]+)`)
	childIDRe  = regexp.MustCompile(`childId=([^&]+)`)
)

// IsStreamURL reports whether url points at a DASH (.mpd) or HLS (.m3u8)
// manifest. Everything else is a direct link and bypasses classification.
func IsStreamURL(url string) bool {
	return strings.Contains(url, ".mpd") || strings.Contains(url, ".m3u8")
}

// ResolveStreamURL splits a streaming-manifest URL into its playable base
// and the parent/child id pair the player needs. CDN-hosted assets pass
// through unchanged with the supplied batch/content ids. Query values
// missing from the URL fall back to batchID/contentID, which may themselves
// be empty. Never fails.
func ResolveStreamURL(rawURL, contentID, batchID string) (resolved, parentID, childID string) {
	if strings.Contains(rawURL, cdnHost) {
		return rawURL, batchID, contentID
	}

	resolved = rawURL
	if idx := strings.Index(rawURL, "parentId="); idx >= 0 {
		resolved = strings.TrimRight(rawURL[:idx], "&")
	}

	parentID = batchID
	if m := parentIDRe.FindStringSubmatch(rawURL); m != nil {
		parentID = m[1]
	}
	childID = contentID
	if m := childIDRe.FindStringSubmatch(rawURL); m != nil {
		childID = m[1]
	}
	return resolved, parentID, childID
}
