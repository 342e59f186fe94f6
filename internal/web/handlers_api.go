package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/civicdash/internal/core"
)

// PageSummary describes a page and its views for API clients.
type PageSummary struct {
	core.PageInfo
	Views []core.ViewInfo `json:"views"`
}

// SummaryResponse is the JSON form of a page summary.
type SummaryResponse struct {
	Page      string                      `json:"page"`
	Cards     []core.StatCard             `json:"cards"`
	Panels    []core.Panel                `json:"panels"`
	Errors    map[string]core.UserMessage `json:"errors,omitempty"` // Keyed by resource
	FetchedAt time.Time                   `json:"fetchedAt"`
}

// ViewResponse is the JSON form of a rendered view.
type ViewResponse struct {
	View      core.ViewInfo               `json:"view"`
	Table     core.Table                  `json:"table"`
	Errors    map[string]core.UserMessage `json:"errors,omitempty"`
	FetchedAt time.Time                   `json:"fetchedAt"`
}

// resourceErrors maps each failed resource to its user message.
func resourceErrors(ds core.Dataset) map[string]core.UserMessage {
	if len(ds.Errors) == 0 {
		return nil
	}
	out := make(map[string]core.UserMessage, len(ds.Errors))
	for k, err := range ds.Errors {
		if err != nil {
			out[k] = core.MapError(err)
		}
	}
	return out
}

// handleListPages returns every page with its views, in sidebar order.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	defs := core.Pages()
	out := make([]PageSummary, len(defs))
	for i, def := range defs {
		views := core.ViewsForPage(def.Info.Key)
		infos := make([]core.ViewInfo, len(views))
		for j, v := range views {
			infos[j] = v.Info
		}
		out[i] = PageSummary{PageInfo: def.Info, Views: infos}
	}
	writeJSON(w, r, out)
}

// handleSummaryJSON returns a page's stat cards and panels.
func (s *Server) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	def, err := lookupPage(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	ds := s.fetch(r, def.Resources)
	resp := SummaryResponse{
		Page:      def.Info.Key,
		Cards:     core.SummarizePage(def, ds),
		Panels:    core.PagePanels(def, ds),
		Errors:    resourceErrors(ds),
		FetchedAt: ds.FetchedAt,
	}
	if resp.Cards == nil {
		resp.Cards = []core.StatCard{}
	}
	if resp.Panels == nil {
		resp.Panels = []core.Panel{}
	}
	writeJSON(w, r, resp)
}

// handleViewJSON returns a rendered table.
func (s *Server) handleViewJSON(w http.ResponseWriter, r *http.Request) {
	def, err := lookupView(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	table, ds := s.renderView(r, def)
	writeJSON(w, r, ViewResponse{
		View:      def.Info,
		Table:     table,
		Errors:    resourceErrors(ds),
		FetchedAt: ds.FetchedAt,
	})
}
