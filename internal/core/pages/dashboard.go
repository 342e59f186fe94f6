package pages

import (
	"math"

	"github.com/JonMunkholm/civicdash/internal/core"
)

func init() {
	registerDashboard()
}

// DashboardMetrics are the city-wide totals reported by /stats.
type DashboardMetrics struct {
	TotalCitizens     float64
	ElectricityKWh    float64
	WaterLitres       float64
	ActiveBuses       float64
	ActiveEmergencies float64 // Open plus dispatched
	WasteZones        float64
	OpenComplaints    float64
	TotalRevenue      float64
}

// ComputeDashboardMetrics reads the dashboard totals. Missing or
// unparseable fields count as 0.
func ComputeDashboardMetrics(ds core.Dataset) DashboardMetrics {
	stats := ds.Object(statsResource.Key)
	return DashboardMetrics{
		TotalCitizens:     stats.Number("total_citizens"),
		ElectricityKWh:    stats.Number("electricity_usage_kwh"),
		WaterLitres:       stats.Number("water_usage_litres"),
		ActiveBuses:       stats.Number("active_buses"),
		ActiveEmergencies: stats.Number("emergency_open") + stats.Number("emergency_dispatched"),
		WasteZones:        stats.Number("waste_zones"),
		OpenComplaints:    stats.Number("complaints_open"),
		TotalRevenue:      stats.Number("total_revenue"),
	}
}

func dashboardCards(ds core.Dataset) []core.StatCard {
	m := ComputeDashboardMetrics(ds)
	return []core.StatCard{
		{Title: "Total Citizens", Value: core.FormatGrouped(int64(math.Round(m.TotalCitizens))), Variant: variantPrimary},
		{Title: "Electricity Usage", Value: core.FormatCount(m.ElectricityKWh) + " kWh", Subtitle: "This month", Variant: variantWarning},
		{Title: "Water Usage", Value: core.FormatCount(m.WaterLitres) + " L", Subtitle: "This month", Variant: variantAccent},
		{Title: "Active Buses", Value: plain(m.ActiveBuses), Variant: variantSuccess},
		{Title: "Emergency Requests", Value: plain(m.ActiveEmergencies), Subtitle: "Active", Variant: variantDestructive},
		{Title: "Waste Zones", Value: plain(m.WasteZones), Variant: variantSuccess},
		{Title: "Open Complaints", Value: plain(m.OpenComplaints), Variant: variantWarning},
		{Title: "Revenue", Value: core.FormatCurrency(m.TotalRevenue), Variant: variantPrimary},
	}
}

func dashboardPanels(ds core.Dataset) []core.Panel {
	stats := ds.Object(statsResource.Key)
	services := ds.Collection(emergencyServicesResource.Key)
	now := ds.Now()

	emergencies := core.Panel{
		Title:        "Recent Emergency Requests",
		EmptyMessage: "No recent emergency requests",
		Items:        []core.PanelItem{},
	}
	for _, req := range core.NormalizeCollection(stats["recent_emergencies"]) {
		serviceID, _ := req.Get("service_id")
		requested, _ := req.Get("request_datetime")
		emergencies.Items = append(emergencies.Items, core.PanelItem{
			Title:  core.JoinLabel(serviceID, services, "service_id", "service_type") + " Emergency",
			Detail: textOr(req, "location", core.Placeholder),
			Status: statusOr(req, "status", "open"),
			Meta:   core.TimeAgo(requested, now),
		})
	}

	complaints := core.Panel{
		Title:        "Recent Complaints",
		EmptyMessage: "No recent complaints",
		Items:        []core.PanelItem{},
	}
	for _, c := range core.NormalizeCollection(stats["recent_complaints"]) {
		reported, _ := c.Get("date_reported")
		complaints.Items = append(complaints.Items, core.PanelItem{
			Title:  textOr(c, "description", "No description"),
			Detail: textOr(c, "category", "Uncategorized"),
			Status: statusOr(c, "status", "open"),
			Meta:   core.TimeAgo(reported, now),
		})
	}

	return []core.Panel{emergencies, complaints}
}

func registerDashboard() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "dashboard",
			Title:    "Dashboard",
			Subtitle: "Welcome to Smart City Management System",
			Order:    0,
			Icon:     "layout-dashboard",
		},
		Resources: []core.Resource{statsResource, emergencyServicesResource},
		Summarize: dashboardCards,
		Panels:    dashboardPanels,
	})
}
