package pages

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JonMunkholm/civicdash/internal/core"
)

func init() {
	registerWaste()
}

// WasteMetrics summarizes collection zones, the truck fleet, and logs.
type WasteMetrics struct {
	Zones        int
	ActiveTrucks int // Any truthy active value
	TotalTrucks  int
	Logs         int
}

// ComputeWasteMetrics derives the waste management totals.
func ComputeWasteMetrics(ds core.Dataset) WasteMetrics {
	trucks := ds.Collection(trucksResource.Key)
	return WasteMetrics{
		Zones:        len(ds.Collection(wasteZonesResource.Key)),
		ActiveTrucks: core.CountTruthy(trucks, "active"),
		TotalTrucks:  len(trucks),
		Logs:         len(ds.Collection(wasteLogsResource.Key)),
	}
}

// FormatSchedule renders a zone schedule as "Monday: 08:00, Thursday: 08:00".
//
// The schedule arrives either as a decoded JSON object or as a string holding
// one. Entries are ordered by weekday when the keys name days, otherwise
// alphabetically. An empty schedule yields "".
func FormatSchedule(v any) (string, error) {
	var schedule map[string]any
	switch s := v.(type) {
	case map[string]any:
		schedule = s
	case core.Entity:
		schedule = s
	case string:
		if err := json.Unmarshal([]byte(s), &schedule); err != nil {
			return "", fmt.Errorf("parse schedule: %w", err)
		}
	default:
		return "", fmt.Errorf("parse schedule: unsupported type %T", v)
	}

	days := make([]string, 0, len(schedule))
	for day := range schedule {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		wi, iok := weekdayIndex(days[i])
		wj, jok := weekdayIndex(days[j])
		if iok && jok && wi != wj {
			return wi < wj
		}
		if iok != jok {
			return iok
		}
		return days[i] < days[j]
	})

	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = day + ": " + core.DisplayValue(schedule[day])
	}
	return strings.Join(parts, ", "), nil
}

// weekdayIndex orders day names Monday first, accepting full or
// three-letter names in any case.
func weekdayIndex(day string) (int, bool) {
	d := strings.ToLower(strings.TrimSpace(day))
	if len(d) < 3 {
		return 0, false
	}
	for i := 0; i < 7; i++ {
		wd := time.Weekday((i + 1) % 7)
		name := strings.ToLower(wd.String())
		if d == name || d == name[:3] {
			return i, true
		}
	}
	return 0, false
}

var zoneColumns = core.MustColumns(
	core.Column{Key: "zone_id", Header: "Zone ID"},
	core.Column{Key: "zone_name", Header: "Name"},
	core.Column{Key: "area_description", Header: "Area Description"},
	core.Column{
		Key:    "schedule",
		Header: "Schedule",
		Render: func(e core.Entity) (core.Cell, error) {
			raw, ok := e.Get("schedule")
			if !ok || raw == "" {
				return core.TextCell(core.Placeholder), nil
			}
			text, err := FormatSchedule(raw)
			if err != nil || text == "" {
				return core.TextCell(core.Placeholder), nil
			}
			return core.TextCell(text), nil
		},
	},
)

var truckColumns = core.MustColumns(
	core.Column{Key: "truck_id", Header: "Truck ID"},
	core.Column{Key: "registration_no", Header: "Registration"},
	core.Column{Key: "capacity_kg", Header: "Capacity (kg)"},
	core.Column{Key: "driver_id", Header: "Driver ID"},
	core.FlagBadge("active", "Status", false),
)

var wasteLogColumns = core.MustColumns(
	core.Column{Key: "log_id", Header: "Log ID"},
	core.Column{Key: "zone_id", Header: "Zone ID"},
	core.Column{Key: "truck_id", Header: "Truck ID"},
	core.Date("collection_date", "Date"),
	core.StatusBadge("status", "Status", "scheduled"),
	core.Snippet("notes", "Notes"),
)

func schedulePanel(ds core.Dataset) []core.Panel {
	panel := core.Panel{
		Title:        "Collection Schedule",
		EmptyMessage: "No zones configured",
		Items:        []core.PanelItem{},
	}
	for _, zone := range ds.Collection(wasteZonesResource.Key) {
		detail := "No schedule"
		if raw, ok := zone.Get("schedule"); ok && raw != "" {
			text, err := FormatSchedule(raw)
			switch {
			case err != nil:
				detail = "Invalid schedule"
			case text != "":
				detail = text
			}
		}
		panel.Items = append(panel.Items, core.PanelItem{
			Title:  textOr(zone, "zone_name", core.Placeholder),
			Detail: detail,
			Meta:   textOr(zone, "area_description", ""),
		})
	}
	return []core.Panel{panel}
}

func registerWaste() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "waste",
			Title:    "Waste Management",
			Subtitle: "Collection zones, trucks, and logs",
			Order:    5,
			Icon:     "trash-2",
		},
		Resources: []core.Resource{wasteZonesResource, trucksResource, wasteLogsResource},
		Summarize: func(ds core.Dataset) []core.StatCard {
			m := ComputeWasteMetrics(ds)
			return []core.StatCard{
				{Title: "Collection Zones", Value: itoa(m.Zones), Variant: variantPrimary},
				{Title: "Active Trucks", Value: itoa(m.ActiveTrucks), Variant: variantSuccess},
				{Title: "Total Trucks", Value: itoa(m.TotalTrucks), Variant: variantAccent},
				{Title: "Collection Logs", Value: itoa(m.Logs), Variant: variantWarning},
			}
		},
		Panels: schedulePanel,
	})

	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "waste_zones", Page: "waste", Label: "Zones", Order: 1},
		Resource:     wasteZonesResource.Key,
		EmptyMessage: "No zones found",
		Columns:      func(core.Dataset) core.ColumnSet { return zoneColumns },
	})
	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "trucks", Page: "waste", Label: "Trucks", Order: 2},
		Resource:     trucksResource.Key,
		EmptyMessage: "No trucks found",
		Columns:      func(core.Dataset) core.ColumnSet { return truckColumns },
	})
	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "waste_logs", Page: "waste", Label: "Collection Logs", Order: 3},
		Resource:     wasteLogsResource.Key,
		EmptyMessage: "No logs found",
		Columns:      func(core.Dataset) core.ColumnSet { return wasteLogColumns },
	})
}
