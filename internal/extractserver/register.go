// Package extractserver exposes the extraction engine as MCP tools. It is
// deliberately thin: token handling, batch selection and file delivery
// belong to the MCP client; the engine does the actual work.
package extractserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all extractor tools on the given MCP server:
// list_batches, extract_batch, fetch_subtitle.
func RegisterTools(server *mcp.Server) {
	registerListBatches(server)
	registerExtractBatch(server)
	registerFetchSubtitle(server)
}
