package pages

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/civicdash/internal/core"
)

func init() {
	registerCitizens()
}

// CitizensMetrics summarizes the citizens directory.
type CitizensMetrics struct {
	Total int
}

// ComputeCitizensMetrics counts the fetched citizens.
func ComputeCitizensMetrics(ds core.Dataset) CitizensMetrics {
	return CitizensMetrics{Total: len(ds.Collection(citizensResource.Key))}
}

// CitizenDeletePath is the dashboard route that deletes one citizen.
func CitizenDeletePath(id string) string {
	return "/citizens/" + url.PathEscape(id)
}

var errNoCitizenID = errors.New("citizen has no citizen_id")

var citizenColumns = core.MustColumns(
	core.Column{Key: "citizen_id", Header: "ID"},
	core.Column{Key: "name", Header: "Name"},
	core.Column{Key: "email", Header: "Email"},
	core.Column{Key: "phone", Header: "Phone"},
	core.Column{Key: "gender", Header: "Gender"},
	core.Column{Key: "address_id", Header: "Address ID"},
	core.Date("created_at", "Registered"),
	core.Column{
		Key:    "actions",
		Header: "Actions",
		Render: func(e core.Entity) (core.Cell, error) {
			id, ok := e.String("citizen_id")
			if !ok || id == "" {
				return core.Cell{}, errNoCitizenID
			}
			return core.ActionCell("Delete", http.MethodDelete, CitizenDeletePath(id),
				"Are you sure you want to delete this citizen?"), nil
		},
	},
)

func registerCitizens() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "citizens",
			Title:    "Citizens",
			Subtitle: "Manage city residents",
			Order:    1,
			Icon:     "users",
		},
		Resources: []core.Resource{citizensResource},
		Summarize: func(ds core.Dataset) []core.StatCard {
			m := ComputeCitizensMetrics(ds)
			return []core.StatCard{
				{Title: "Total Citizens", Value: itoa(m.Total), Variant: variantPrimary},
			}
		},
	})

	core.RegisterView(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:   "citizens",
			Page:  "citizens",
			Label: "Citizens Directory",
		},
		Resource:     citizensResource.Key,
		EmptyMessage: "No citizens found",
		Columns:      func(core.Dataset) core.ColumnSet { return citizenColumns },
	})
}
