package extractserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_extract/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerFetchSubtitle(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_subtitle",
		Description: "Download a caption file (.vtt or .srt, as listed in an extracted manifest) and return its plain text with cue ids and timestamps stripped. A failed download reports found=false rather than an error.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SubtitleInput) (*mcp.CallToolResult, engine.SubtitleOutput, error) {
		if input.URL == "" {
			return nil, engine.SubtitleOutput{}, fmt.Errorf("url is required")
		}

		text, ok := engine.FetchSubtitle(ctx, input.URL)
		return nil, engine.SubtitleOutput{Text: text, Found: ok}, nil
	})
}
