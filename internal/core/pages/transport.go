package pages

import "github.com/JonMunkholm/civicdash/internal/core"

func init() {
	registerTransport()
}

// TransportMetrics summarizes the public transport fleet.
type TransportMetrics struct {
	Routes        int
	ActiveBuses   int // active is exactly true or 1
	Drivers       int
	TotalDistance float64
}

// ComputeTransportMetrics derives the transport totals.
func ComputeTransportMetrics(ds core.Dataset) TransportMetrics {
	routes := ds.Collection(routesResource.Key)
	return TransportMetrics{
		Routes:        len(routes),
		ActiveBuses:   core.CountFlag(ds.Collection(busesResource.Key), "active"),
		Drivers:       len(ds.Collection(driversResource.Key)),
		TotalDistance: core.Sum(routes, "distance_km"),
	}
}

var (
	routeColumns = core.MustColumns(
		core.Column{Key: "route_id", Header: "Route ID"},
		core.Column{Key: "route_name", Header: "Name"},
		core.Column{Key: "start_point", Header: "Start"},
		core.Column{Key: "end_point", Header: "End"},
		core.Decimal("distance_km", "Distance (km)", 2, core.Placeholder),
	)

	busColumns = core.MustColumns(
		core.Column{Key: "bus_id", Header: "Bus ID"},
		core.Column{Key: "registration_no", Header: "Registration"},
		core.Column{Key: "route_id", Header: "Route ID"},
		core.Column{Key: "capacity", Header: "Capacity"},
		core.Column{Key: "driver_id", Header: "Driver ID"},
		core.FlagBadge("active", "Status", true),
	)

	driverColumns = core.MustColumns(
		core.Column{Key: "driver_id", Header: "ID"},
		core.Column{Key: "name", Header: "Name"},
		core.Column{Key: "license_no", Header: "License"},
		core.Column{Key: "phone", Header: "Phone"},
		core.Column{Key: "address", Header: "Address"},
	)
)

func registerTransport() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "transport",
			Title:    "Transport",
			Subtitle: "Public transport management",
			Order:    3,
			Icon:     "bus",
		},
		Resources: []core.Resource{routesResource, busesResource, driversResource},
		Summarize: func(ds core.Dataset) []core.StatCard {
			m := ComputeTransportMetrics(ds)
			return []core.StatCard{
				{Title: "Total Routes", Value: itoa(m.Routes), Variant: variantPrimary},
				{Title: "Active Buses", Value: itoa(m.ActiveBuses), Variant: variantSuccess},
				{Title: "Total Drivers", Value: itoa(m.Drivers), Variant: variantAccent},
				{Title: "Total Distance", Value: core.FormatUnit(m.TotalDistance, 1, "km"), Variant: variantWarning},
			}
		},
	})

	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "routes", Page: "transport", Label: "Routes", Order: 1},
		Resource:     routesResource.Key,
		EmptyMessage: "No routes found",
		Columns:      func(core.Dataset) core.ColumnSet { return routeColumns },
	})
	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "buses", Page: "transport", Label: "Buses", Order: 2},
		Resource:     busesResource.Key,
		EmptyMessage: "No buses found",
		Columns:      func(core.Dataset) core.ColumnSet { return busColumns },
	})
	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "drivers", Page: "transport", Label: "Drivers", Order: 3},
		Resource:     driversResource.Key,
		EmptyMessage: "No drivers found",
		Columns:      func(core.Dataset) core.ColumnSet { return driverColumns },
	})
}
