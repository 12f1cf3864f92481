package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"retail-bi/internal/analytics"
	"retail-bi/internal/dataset"
	"retail-bi/internal/filter"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer(charts bool) *Server {
	ds := dataset.Generate(dataset.GeneratorConfig{Seed: 21, Orders: 120, InventoryRows: 60})
	s := NewServer(analytics.NewSession(ds, 0), charts)
	s.now = func() time.Time { return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

// decode unpacks the envelope of a text tool result.
func decode(t *testing.T, res *sdk.CallToolResult) map[string]any {
	t.Helper()
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("Expected one content block, got %+v", res)
	}
	text, ok := res.Content[0].(*sdk.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", res.Content[0])
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(text.Text), &env); err != nil {
		t.Fatalf("Invalid JSON result: %v", err)
	}
	return env
}

func TestHandleActivateAndSetFilter(t *testing.T) {
	s := newTestServer(false)
	ctx := context.Background()

	res, _, err := s.handleActivatePage(ctx, nil, pageArgs{Page: "inventory"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if env := decode(t, res); env["page"] != "inventory" {
		t.Errorf("Expected inventory page, got %v", env["page"])
	}

	res, _, err = s.handleSetFilter(ctx, nil, filter.Params{Stores: []string{"CH001,CH002"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data := decode(t, res)["data"].(map[string]any)
	if stores := data["stores"].([]any); len(stores) != 2 {
		t.Errorf("Expected 2 stores selected, got %v", stores)
	}

	if _, _, err := s.handleSetFilter(ctx, nil, filter.Params{Granularity: "week"}); err == nil {
		t.Error("Expected error for unknown granularity")
	}
	if got := s.session.Filter().Stores; len(got) != 2 {
		t.Errorf("A rejected update should keep the filter, got %v", got)
	}

	if _, _, err := s.handleSetFilter(ctx, nil, filter.Params{Clear: []string{"stores"}, Locations: []string{"HN"}}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if f := s.session.Filter(); len(f.Stores) != 0 || len(f.Locations) != 1 {
		t.Errorf("Expected stores cleared and locations [HN], got %v %v", f.Stores, f.Locations)
	}
	if _, _, err := s.handleSetFilter(ctx, nil, filter.Params{Clear: []string{"regions"}}); err == nil {
		t.Error("Expected error for unknown field to clear")
	}

	if _, _, err := s.handleResetFilter(ctx, nil, noArgs{}); err != nil {
		t.Fatal(err)
	}
	if f := s.session.Filter(); !f.IsDefault() {
		t.Errorf("Expected default filter after reset, got %+v", f)
	}
}

func TestHandleActivatePage_Unknown(t *testing.T) {
	s := newTestServer(false)
	if _, _, err := s.handleActivatePage(context.Background(), nil, pageArgs{Page: "reports"}); err == nil {
		t.Error("Expected error for unknown page")
	}
}

func TestHandleRenderPage(t *testing.T) {
	s := newTestServer(true)
	ctx := context.Background()

	res, _, err := s.handleRenderPage(ctx, nil, renderArgs{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decode(t, res)
	if env["page"] != "dashboard" {
		t.Errorf("Expected dashboard, got %v", env["page"])
	}
	data := env["data"].(map[string]any)
	if months := data["sales_by_month"].([]any); len(months) != 12 {
		t.Errorf("Expected 12 months, got %d", len(months))
	}
	if data["year"].(float64) != 2024 {
		t.Errorf("Expected latest year 2024, got %v", data["year"])
	}
	charts, _ := env["charts"].([]any)
	if len(charts) == 0 || !strings.Contains(charts[0].(string), "xychart-beta") {
		t.Errorf("Expected mermaid charts, got %v", env["charts"])
	}

	res, _, err = s.handleRenderPage(ctx, nil, renderArgs{Page: "stores"})
	if err != nil {
		t.Fatal(err)
	}
	if env := decode(t, res); env["page"] != "stores" {
		t.Errorf("Expected navigation to stores, got %v", env["page"])
	}
	if s.session.Active() != analytics.PageStores {
		t.Errorf("Expected session on stores, got %s", s.session.Active())
	}
}

func TestHandleQueryView(t *testing.T) {
	s := newTestServer(false)
	res, _, err := s.handleQueryView(context.Background(), nil, queryArgs{
		Page:   "orders",
		Filter: filter.Params{Locations: []string{"HN"}, Granularity: "quarter"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decode(t, res)
	if _, ok := env["charts"]; ok {
		t.Error("Charts should be omitted when disabled")
	}
	data := env["data"].(map[string]any)
	for _, row := range data["rows"].([]any) {
		if loc := row.(map[string]any)["location_code"]; loc != "HN" {
			t.Errorf("Row outside HN: %v", loc)
		}
	}
	if data["granularity"] != "quarter" {
		t.Errorf("Expected quarter buckets, got %v", data["granularity"])
	}
	if s.session.Active() != analytics.PageDashboard {
		t.Error("query_view should not navigate the session")
	}
}

func TestServer_ToolsOverTransport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := newTestServer(false)
	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	ss, err := s.Build("test").Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("Server connect failed: %v", err)
	}
	defer ss.Close()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Client connect failed: %v", err)
	}
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"list_pages", "get_filter_options", "activate_page", "set_filter", "reset_filter", "render_page", "query_view"} {
		if !names[want] {
			t.Errorf("Tool %s not registered", want)
		}
	}

	res, err := cs.CallTool(ctx, &sdk.CallToolParams{
		Name:      "activate_page",
		Arguments: map[string]any{"page": "customers"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Errorf("Unexpected tool error: %+v", res.Content)
	}

	res, err = cs.CallTool(ctx, &sdk.CallToolParams{
		Name:      "set_filter",
		Arguments: map[string]any{"granularity": "fortnight"},
	})
	// The enum rejects the value before the handler runs.
	if err == nil && !res.IsError {
		t.Error("Expected an invalid granularity to be rejected")
	}
}
