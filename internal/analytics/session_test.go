package analytics

import (
	"errors"
	"testing"
	"time"

	"retail-bi/internal/filter"
)

func TestParsePage(t *testing.T) {
	for _, p := range Pages {
		if got, err := ParsePage(string(p)); err != nil || got != p {
			t.Errorf("ParsePage(%q) = %q, %v", p, got, err)
		}
	}
	if got, _ := ParsePage(" Orders "); got != PageOrders {
		t.Errorf("Expected orders, got %q", got)
	}
	if _, err := ParsePage("reports"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("Expected ErrUnknownPage, got %v", err)
	}
}

func TestRender_EveryPage(t *testing.T) {
	ds := smallDataset()
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range Pages {
		t.Run(string(p), func(t *testing.T) {
			v, err := Render(ds, p, filter.New(), 0, now)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if v == nil {
				t.Fatal("Expected a view")
			}
		})
	}

	v, _ := Render(ds, PageDashboard, filter.New(), 0, now)
	if got := v.(DashboardView).Year; got != 2023 {
		t.Errorf("Expected dashboard to default to the latest year 2023, got %d", got)
	}
	if _, err := Render(ds, Page("nope"), filter.New(), 0, now); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("Expected ErrUnknownPage, got %v", err)
	}
}

func TestSession_ActivateDiscardsFilter(t *testing.T) {
	s := NewSession(smallDataset(), 2022)
	if s.Active() != PageDashboard {
		t.Fatalf("Expected dashboard on open, got %s", s.Active())
	}

	err := s.Update(func(st *filter.State) error {
		st.SetLocations([]string{"HN"})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Filter().Locations; len(got) != 1 {
		t.Fatalf("Expected location selection, got %v", got)
	}

	if err := s.Activate(PageOrders); err != nil {
		t.Fatal(err)
	}
	if f := s.Filter(); !f.IsDefault() {
		t.Errorf("Expected a fresh filter after navigation, got %+v", f)
	}
	if err := s.Activate("reports"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("Expected ErrUnknownPage, got %v", err)
	}
	if s.Active() != PageOrders {
		t.Error("A failed navigation should keep the current page")
	}
}

func TestSession_UpdateFailureLeavesFilter(t *testing.T) {
	s := NewSession(smallDataset(), 2022)
	boom := errors.New("boom")
	err := s.Update(func(st *filter.State) error {
		st.SetStores([]string{"S1"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if len(s.Filter().Stores) != 0 {
		t.Error("A failed update should not be applied")
	}
}

func TestSession_FilterIsDetached(t *testing.T) {
	s := NewSession(smallDataset(), 2022)
	if err := s.Update(func(st *filter.State) error {
		st.SetLocations([]string{"HN"})
		st.SetDateRange(filter.ParseDateBound("2022-01-01"), nil)
		return nil
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f := s.Filter()
	f.Locations[0] = "HCM"
	*f.DateRange.From = f.DateRange.From.AddDate(1, 0, 0)

	got := s.Filter()
	if got.Locations[0] != "HN" {
		t.Errorf("Expected session locations [HN], got %v", got.Locations)
	}
	if got.DateRange.From.Year() != 2022 {
		t.Errorf("Expected session lower bound in 2022, got %v", got.DateRange.From)
	}

	// A failed update that wrote into the slices in place is discarded too.
	_ = s.Update(func(st *filter.State) error {
		st.Locations[0] = "DN"
		return errors.New("boom")
	})
	if got := s.Filter(); got.Locations[0] != "HN" {
		t.Errorf("Expected session locations [HN] after failed update, got %v", got.Locations)
	}
}

func TestSession_RenderUsesActiveFilter(t *testing.T) {
	s := NewSession(smallDataset(), 2022)
	_ = s.Activate(PageOrders)
	_ = s.Update(func(st *filter.State) error {
		return filter.Params{Customers: []string{"C2"}, Granularity: "year"}.ApplyPresent(st)
	})

	page, v, err := s.Render(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if page != PageOrders {
		t.Errorf("Expected orders page, got %s", page)
	}
	ov := v.(OrdersView)
	if len(ov.Rows) != 1 || len(ov.SalesByTime) != 1 || ov.SalesByTime[0].Label != "2022" {
		t.Errorf("Unexpected orders view %+v", ov)
	}

	s.Reset()
	_, v, _ = s.Render(time.Now())
	if got := len(v.(OrdersView).Rows); got != 3 {
		t.Errorf("Expected all 3 orders after reset, got %d", got)
	}
}
