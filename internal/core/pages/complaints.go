package pages

import "github.com/JonMunkholm/civicdash/internal/core"

func init() {
	registerComplaints()
}

// complaintCategories are the categories shown in the overview, in order.
var complaintCategories = []string{"Infrastructure", "Utilities", "Sanitation", "Other"}

// ComplaintsMetrics summarizes complaint workflow state.
type ComplaintsMetrics struct {
	Total      int
	Open       int
	InProgress int
	Resolved   int
	Categories []core.ValueCount
}

// ComputeComplaintsMetrics derives the complaint totals. Status and category
// comparisons are exact.
func ComputeComplaintsMetrics(ds core.Dataset) ComplaintsMetrics {
	complaints := ds.Collection(complaintsResource.Key)
	return ComplaintsMetrics{
		Total:      len(complaints),
		Open:       core.CountWhere(complaints, "status", "Open"),
		InProgress: core.CountWhere(complaints, "status", "In Progress"),
		Resolved:   core.CountWhere(complaints, "status", "Resolved"),
		Categories: core.CountByValues(complaints, "category", complaintCategories...),
	}
}

var complaintColumns = core.MustColumns(
	core.Column{Key: "complaint_id", Header: "ID"},
	core.Column{Key: "category", Header: "Category"},
	core.Snippet("description", "Description"),
	core.Column{Key: "citizen_id", Header: "Citizen ID"},
	core.Date("date_reported", "Filed"),
	core.StatusBadge("status", "Status", "open"),
	core.Column{Key: "priority", Header: "Priority"},
)

var complaintUpdateColumns = core.MustColumns(
	core.Column{Key: "update_id", Header: "ID"},
	core.Column{Key: "complaint_id", Header: "Complaint ID"},
	core.Column{Key: "updated_by", Header: "Updated By"},
	core.Snippet("comment", "Comment"),
	core.DateTime("update_time", "Updated At"),
)

func registerComplaints() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "complaints",
			Title:    "Complaints",
			Subtitle: "Citizen complaints and feedback",
			Order:    6,
			Icon:     "message-square",
		},
		Resources: []core.Resource{complaintsResource, complaintUpdatesResource},
		Summarize: func(ds core.Dataset) []core.StatCard {
			m := ComputeComplaintsMetrics(ds)
			return []core.StatCard{
				{Title: "Total Complaints", Value: itoa(m.Total), Variant: variantPrimary},
				{Title: "Pending", Value: itoa(m.Open), Variant: variantWarning},
				{Title: "In Progress", Value: itoa(m.InProgress), Variant: variantInfo},
				{Title: "Resolved", Value: itoa(m.Resolved), Variant: variantSuccess},
			}
		},
		Panels: func(ds core.Dataset) []core.Panel {
			m := ComputeComplaintsMetrics(ds)
			panel := core.Panel{Title: "Complaint Categories", Items: make([]core.PanelItem, len(m.Categories))}
			for i, c := range m.Categories {
				panel.Items[i] = core.PanelItem{Title: c.Value, Count: intPtr(c.Count)}
			}
			return []core.Panel{panel}
		},
	})

	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "complaints", Page: "complaints", Label: "All Complaints", Order: 1},
		Resource:     complaintsResource.Key,
		EmptyMessage: "No complaints filed yet",
		Columns:      func(core.Dataset) core.ColumnSet { return complaintColumns },
	})
	core.RegisterView(core.ViewDefinition{
		Info:         core.ViewInfo{Key: "complaint_updates", Page: "complaints", Label: "Updates", Order: 2},
		Resource:     complaintUpdatesResource.Key,
		EmptyMessage: "No updates recorded",
		Columns:      func(core.Dataset) core.ColumnSet { return complaintUpdateColumns },
	})
}
