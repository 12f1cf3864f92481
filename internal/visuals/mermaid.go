package visuals

import (
	"fmt"
	"math"
	"strings"

	"retail-bi/internal/analytics"
)

// maxBars caps how many categories a text chart shows.
const maxBars = 20

type series struct {
	labels []string
	values []float64
}

func fromPoints(points []analytics.Point) series {
	var s series
	for i, p := range points {
		if i == maxBars {
			break
		}
		s.labels = append(s.labels, p.Label)
		s.values = append(s.values, p.Value.InexactFloat64())
	}
	return s
}

func fromCounts(counts []analytics.Count) series {
	var s series
	for i, c := range counts {
		if i == maxBars {
			break
		}
		s.labels = append(s.labels, c.Label)
		s.values = append(s.values, float64(c.Count))
	}
	return s
}

// render writes a Mermaid xychart-beta block with a single bar or line series.
func render(title, yAxis, kind string, s series) string {
	if len(s.values) == 0 {
		return ""
	}

	labels := make([]string, len(s.labels))
	values := make([]string, len(s.values))
	maxVal := 0.0
	for i, v := range s.values {
		labels[i] = quote(s.labels[i])
		values[i] = fmt.Sprintf("%.0f", v)
		maxVal = math.Max(maxVal, v)
	}
	// Headroom above the tallest bar.
	top := int(math.Ceil(maxVal * 1.2))
	if top == 0 {
		top = 1
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %d\n", quote(yAxis), top))
	sb.WriteString(fmt.Sprintf("    %s [%s]\n", kind, strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}

// BarChart renders summed groups as bars.
func BarChart(title, yAxis string, points []analytics.Point) string {
	return render(title, yAxis, "bar", fromPoints(points))
}

// LineChart renders a time series as a line.
func LineChart(title, yAxis string, points []analytics.Point) string {
	return render(title, yAxis, "line", fromPoints(points))
}

// CountChart renders record counts as bars.
func CountChart(title string, counts []analytics.Count) string {
	return render(title, "Count", "bar", fromCounts(counts))
}

// PageCharts returns the charts of a rendered page view, skipping empty ones.
func PageCharts(view any) []string {
	var charts []string
	add := func(c string) {
		if c != "" {
			charts = append(charts, c)
		}
	}

	switch v := view.(type) {
	case analytics.DashboardView:
		add(LineChart(fmt.Sprintf("Sales by Month (%d)", v.Year), "Sales", v.SalesByMonth))
		add(BarChart("Sales by Location", "Sales", v.SalesByLocation))
		add(BarChart("Top Products", "Sales", v.TopProducts))
		add(BarChart("Top Customers", "Sales", v.TopCustomers))
	case analytics.OrdersView:
		add(LineChart(fmt.Sprintf("Sales by %s", v.Granularity), "Sales", v.SalesByTime))
		add(BarChart("Sales by Location", "Sales", v.SalesByLocation))
	case analytics.CustomersView:
		add(CountChart("Customer Types", v.TypeDistribution))
		add(CountChart("Customers by Location", v.ByLocation))
		add(BarChart("Top Customers by Value", "Sales", v.TopByValue))
	case analytics.InventoryView:
		add(BarChart("Received by Store", "Quantity", v.ByStore))
		add(BarChart("Top Products Received", "Quantity", v.ByProduct))
	case analytics.StoresView:
		add(CountChart("Stores by Location", v.ByLocation))
		add(BarChart("Inventory by Store", "Quantity", v.InventoryByStore))
	}
	return charts
}
