package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retail-bi/internal/analytics"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes a dashboard session as MCP tools.
type Server struct {
	session      *analytics.Session
	enableCharts bool
	now          func() time.Time
}

// NewServer creates a new MCP server over session.
func NewServer(session *analytics.Session, enableCharts bool) *Server {
	return &Server{session: session, enableCharts: enableCharts, now: time.Now}
}

// Serve runs the tool server on stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Serve(ctx context.Context, version string) error {
	log.Info().Str("version", version).Msg("Starting MCP server on stdio")
	return s.Build(version).Run(ctx, &sdk.StdioTransport{})
}

// Build registers every tool on a new SDK server.
func (s *Server) Build(version string) *sdk.Server {
	srv := sdk.NewServer(&sdk.Implementation{Name: "retail-bi", Version: version}, nil)
	pages := pageEnum()

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "list_pages",
		Description: "List the dashboard pages and report which one is active.",
		InputSchema: schemaFor[noArgs](nil),
	}, s.handleListPages)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_filter_options",
		Description: "List the selectable codes and display names for every filter (locations, customers, products, stores) and the supported granularities.",
		InputSchema: schemaFor[noArgs](nil),
	}, s.handleFilterOptions)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "activate_page",
		Description: "Navigate to a page. The page starts with a fresh, unrestricted filter; the previous page's filter is discarded.",
		InputSchema: schemaFor[pageArgs](map[string][]any{"page": pages}),
	}, s.handleActivatePage)

	sdk.AddTool(srv, &sdk.Tool{
		Name: "set_filter",
		Description: "Change the active page's filter. Only the fields supplied are replaced, each wholesale; the rest keep their value. " +
			"List a field under clear to drop its selection, e.g. clear=[\"locations\"]. " +
			"Dates are inclusive YYYY-MM-DD bounds; a malformed date leaves that bound unset. Unknown codes match nothing.",
		InputSchema: schemaFor[setFilterArgs](map[string][]any{"granularity": granularityEnum(), "clear": clearEnum()}),
	}, s.handleSetFilter)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "reset_filter",
		Description: "Restore the active page's filter to its defaults: no selections, no date range, monthly buckets.",
		InputSchema: schemaFor[noArgs](nil),
	}, s.handleResetFilter)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "render_page",
		Description: "Compute the active page's view under its current filter. Passing a different page navigates there first.",
		InputSchema: schemaFor[renderArgs](map[string][]any{"page": pages}),
	}, s.handleRenderPage)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "query_view",
		Description: "Compute one page's view under an ad-hoc filter without touching the session.",
		InputSchema: schemaFor[queryArgs](map[string][]any{"page": pages}),
	}, s.handleQueryView)

	return srv
}

// schemaFor infers the input schema of T and pins the listed properties to
// their allowed values. For array properties the values apply to the items.
func schemaFor[T any](enums map[string][]any) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("input schema for %T: %v", *new(T), err))
	}
	for name, values := range enums {
		prop, ok := schema.Properties[name]
		if !ok {
			continue
		}
		if prop.Items != nil {
			prop.Items.Enum = values
		} else {
			prop.Enum = values
		}
	}
	return schema
}

// ResponseEnvelope is the JSON body of every tool result.
type ResponseEnvelope struct {
	Page     analytics.Page `json:"page,omitempty"`
	Data     any            `json:"data"`
	Charts   []string       `json:"charts,omitempty"`
	Guidance []string       `json:"guidance,omitempty"`
}

func textResult(env ResponseEnvelope) (*sdk.CallToolResult, any, error) {
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(out)}},
	}, nil, nil
}
