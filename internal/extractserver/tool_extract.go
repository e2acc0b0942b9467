package extractserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_extract/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerExtractBatch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_batch",
		Description: "Extract the full content listing of one batch (video lecture URLs, note attachments, subtitle links) into a flat text manifest, one link per line. Subjects are fetched concurrently; line order follows completion order. Returns the manifest path and run counters.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ExtractInput) (*mcp.CallToolResult, engine.ExtractResult, error) {
		if input.Token == "" {
			return nil, engine.ExtractResult{}, fmt.Errorf("token is required")
		}
		if input.BatchID == "" {
			return nil, engine.ExtractResult{}, fmt.Errorf("batch_id is required")
		}

		outputPath := input.OutputPath
		if outputPath == "" {
			outputPath = engine.CleanText(input.BatchID) + ".txt"
		}

		res, err := engine.RunExtraction(ctx, input.Token, input.BatchID, outputPath)
		if err != nil {
			return nil, engine.ExtractResult{}, err
		}
		return nil, res, nil
	})
}
