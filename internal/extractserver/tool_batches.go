package extractserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_extract/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerListBatches(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_batches",
		Description: "List the batches (purchased courses) on a MadeEasy account. Returns batch ids and names; pass a batch id to extract_batch. Requires the account's bearer token.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.BatchListInput) (*mcp.CallToolResult, engine.BatchListOutput, error) {
		if input.Token == "" {
			return nil, engine.BatchListOutput{}, fmt.Errorf("token is required")
		}

		cacheKey := engine.CacheKey("list_batches", input.Token)
		if batches, ok := engine.CacheGetBatches(ctx, cacheKey); ok {
			return nil, engine.BatchListOutput{Batches: batches, Count: len(batches)}, nil
		}

		batches, err := engine.FetchBatches(ctx, input.Token)
		if err != nil {
			return nil, engine.BatchListOutput{}, err
		}

		engine.CacheSetBatches(ctx, cacheKey, batches)
		return nil, engine.BatchListOutput{Batches: batches, Count: len(batches)}, nil
	})
}
