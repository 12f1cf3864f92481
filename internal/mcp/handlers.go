package mcp

import (
	"context"
	"fmt"

	"retail-bi/internal/analytics"
	"retail-bi/internal/filter"
	"retail-bi/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type noArgs struct{}

type pageArgs struct {
	Page string `json:"page" jsonschema:"page to open"`
}

type renderArgs struct {
	Page string `json:"page,omitempty" jsonschema:"page to render; defaults to the active page"`
}

type setFilterArgs = filter.Params

type queryArgs struct {
	Page   string        `json:"page" jsonschema:"page to compute"`
	Filter filter.Params `json:"filter,omitempty" jsonschema:"filter to apply; omitted fields are unrestricted"`
	Year   int           `json:"year,omitempty" jsonschema:"dashboard year; defaults to the configured year"`
}

func pageEnum() []any {
	out := make([]any, len(analytics.Pages))
	for i, p := range analytics.Pages {
		out[i] = string(p)
	}
	return out
}

func granularityEnum() []any {
	out := make([]any, len(filter.Granularities))
	for i, g := range filter.Granularities {
		out[i] = string(g)
	}
	return out
}

func clearEnum() []any {
	out := make([]any, len(filter.ClearableFields))
	for i, f := range filter.ClearableFields {
		out[i] = f
	}
	return out
}

func (s *Server) handleListPages(_ context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	return textResult(ResponseEnvelope{
		Page: s.session.Active(),
		Data: map[string]any{"pages": analytics.Pages, "active": s.session.Active()},
	})
}

func (s *Server) handleFilterOptions(_ context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	return textResult(ResponseEnvelope{
		Data: map[string]any{
			"dimensions":    s.session.Data().Options(),
			"granularities": filter.Granularities,
		},
	})
}

func (s *Server) handleActivatePage(_ context.Context, _ *sdk.CallToolRequest, args pageArgs) (*sdk.CallToolResult, any, error) {
	page, err := analytics.ParsePage(args.Page)
	if err != nil {
		return nil, nil, err
	}
	if err := s.session.Activate(page); err != nil {
		return nil, nil, err
	}
	return textResult(ResponseEnvelope{
		Page:     page,
		Data:     s.session.Filter(),
		Guidance: []string{"Call 'set_filter' to narrow the view, then 'render_page'."},
	})
}

func (s *Server) handleSetFilter(_ context.Context, _ *sdk.CallToolRequest, args setFilterArgs) (*sdk.CallToolResult, any, error) {
	if err := s.session.Update(args.ApplyPresent); err != nil {
		return nil, nil, err
	}
	log.Debug().Str("page", string(s.session.Active())).Msg("Filter updated")
	return textResult(ResponseEnvelope{Page: s.session.Active(), Data: s.session.Filter()})
}

func (s *Server) handleResetFilter(_ context.Context, _ *sdk.CallToolRequest, _ noArgs) (*sdk.CallToolResult, any, error) {
	s.session.Reset()
	return textResult(ResponseEnvelope{Page: s.session.Active(), Data: s.session.Filter()})
}

func (s *Server) handleRenderPage(_ context.Context, _ *sdk.CallToolRequest, args renderArgs) (*sdk.CallToolResult, any, error) {
	if args.Page != "" {
		page, err := analytics.ParsePage(args.Page)
		if err != nil {
			return nil, nil, err
		}
		if page != s.session.Active() {
			if err := s.session.Activate(page); err != nil {
				return nil, nil, err
			}
		}
	}

	page, view, err := s.session.Render(s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render %s: %w", page, err)
	}
	return textResult(s.envelope(page, view))
}

func (s *Server) handleQueryView(_ context.Context, _ *sdk.CallToolRequest, args queryArgs) (*sdk.CallToolResult, any, error) {
	page, err := analytics.ParsePage(args.Page)
	if err != nil {
		return nil, nil, err
	}
	st, err := args.Filter.State()
	if err != nil {
		return nil, nil, err
	}
	year := args.Year
	if year == 0 {
		year = s.session.Year()
	}

	view, err := analytics.Render(s.session.Data(), page, st, year, s.now())
	if err != nil {
		return nil, nil, err
	}
	return textResult(s.envelope(page, view))
}

func (s *Server) envelope(page analytics.Page, view any) ResponseEnvelope {
	env := ResponseEnvelope{Page: page, Data: view}
	if s.enableCharts {
		env.Charts = visuals.PageCharts(view)
	}
	return env
}
