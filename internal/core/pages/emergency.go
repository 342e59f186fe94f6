package pages

import "github.com/JonMunkholm/civicdash/internal/core"

func init() {
	registerEmergency()
}

// EmergencyMetrics summarizes open requests and registered service units.
type EmergencyMetrics struct {
	ActiveRequests int // Open or Dispatched
	Medical        int
	Fire           int
	Police         int
}

// ComputeEmergencyMetrics derives the emergency totals. Service units are
// classified by a case-insensitive substring of service_type.
func ComputeEmergencyMetrics(ds core.Dataset) EmergencyMetrics {
	services := ds.Collection(emergencyServicesResource.Key)
	return EmergencyMetrics{
		ActiveRequests: core.CountWhereAny(ds.Collection(emergencyRequestsResource.Key), "status", "Open", "Dispatched"),
		Medical:        core.CountContainsFold(services, "service_type", "ambulance", "medical"),
		Fire:           core.CountContainsFold(services, "service_type", "fire"),
		Police:         core.CountContainsFold(services, "service_type", "police"),
	}
}

// hotlines are the fixed public emergency numbers.
var hotlines = []core.PanelItem{
	{Title: "Medical", Detail: "108", Variant: variantSuccess},
	{Title: "Fire", Detail: "101", Variant: variantWarning},
	{Title: "Police", Detail: "100", Variant: variantPrimary},
	{Title: "Unified Emergency", Detail: "112", Variant: variantDestructive},
}

// requestColumns resolves each request's service type against the services
// fetched alongside it.
func requestColumns(ds core.Dataset) core.ColumnSet {
	services := ds.Collection(emergencyServicesResource.Key)
	return core.MustColumns(
		core.Column{Key: "req_id", Header: "ID"},
		core.Column{
			Key:    "service_id",
			Header: "Service Type",
			Render: func(e core.Entity) (core.Cell, error) {
				id, _ := e.Get("service_id")
				return core.TextCell(core.JoinLabel(id, services, "service_id", "service_type")), nil
			},
		},
		core.Column{Key: "location", Header: "Location"},
		core.Snippet("notes", "Notes"),
		core.DateTime("request_datetime", "Request Time"),
		core.StatusBadge("status", "Status", "open"),
	)
}

var serviceColumns = core.MustColumns(
	core.Column{Key: "service_id", Header: "ID"},
	core.Column{Key: "service_type", Header: "Type"},
	core.Column{Key: "phone", Header: "Contact"},
	core.Column{Key: "area_covered", Header: "Area Covered"},
)

func registerEmergency() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "emergency",
			Title:    "Emergency Services",
			Subtitle: "Manage emergency requests and services",
			Order:    4,
			Icon:     "alert-triangle",
		},
		Resources: []core.Resource{emergencyRequestsResource, emergencyServicesResource},
		Summarize: func(ds core.Dataset) []core.StatCard {
			m := ComputeEmergencyMetrics(ds)
			return []core.StatCard{
				{Title: "Active Emergencies", Value: itoa(m.ActiveRequests), Variant: variantDestructive},
				{Title: "Medical Services", Value: itoa(m.Medical), Variant: variantSuccess},
				{Title: "Fire Services", Value: itoa(m.Fire), Variant: variantWarning},
				{Title: "Police Services", Value: itoa(m.Police), Variant: variantPrimary},
			}
		},
		Panels: func(core.Dataset) []core.Panel {
			items := make([]core.PanelItem, len(hotlines))
			copy(items, hotlines)
			return []core.Panel{{Title: "Emergency Hotlines", Items: items}}
		},
	})

	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "emergency_requests", Page: "emergency", Label: "Emergency Requests", Order: 1},
		Resource:     emergencyRequestsResource.Key,
		EmptyMessage: "No emergency requests found",
		Columns:      requestColumns,
	})
	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "emergency_services", Page: "emergency", Label: "Emergency Services", Order: 2},
		Resource:     emergencyServicesResource.Key,
		EmptyMessage: "No emergency services registered",
		Columns:      func(core.Dataset) core.ColumnSet { return serviceColumns },
	})
}
