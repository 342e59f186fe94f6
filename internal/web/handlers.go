package web

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/civicdash/internal/config"
	"github.com/JonMunkholm/civicdash/internal/core"
	"github.com/JonMunkholm/civicdash/internal/core/pages"
	"github.com/JonMunkholm/civicdash/internal/logging"
	"github.com/JonMunkholm/civicdash/internal/web/templates"
)

// homePage is the page served at "/".
const homePage = "dashboard"

// citizensView is re-rendered after a citizen is deleted.
const citizensView = "citizens"

// pagePath returns the route of a page.
func pagePath(key string) string {
	if key == homePage {
		return "/"
	}
	return "/" + key
}

// nav builds the sidebar with active highlighted.
func (s *Server) nav(active string) templates.Nav {
	defs := core.Pages()
	items := make([]templates.NavItem, 0, len(defs)+1)
	for _, def := range defs {
		items = append(items, templates.NavItem{
			Label:  def.Info.Title,
			Href:   pagePath(def.Info.Key),
			Icon:   def.Info.Icon,
			Active: def.Info.Key == active,
		})
	}
	items = append(items, templates.NavItem{
		Label:  "Settings",
		Href:   "/settings",
		Icon:   "settings",
		Active: active == "settings",
	})
	return templates.Nav{AppTitle: s.cfg.Dashboard.Title, Items: items}
}

// baseURL resolves the backend root for r.
func (s *Server) baseURL(r *http.Request) string {
	return BaseURL(r, s.cfg.Backend)
}

// fetch loads resources from the backend selected for r.
func (s *Server) fetch(r *http.Request, resources []core.Resource) core.Dataset {
	return s.backend.FetchDataset(r.Context(), s.baseURL(r), resources)
}

// lookupPage resolves the {page} parameter, defaulting to the home page.
func lookupPage(r *http.Request) (core.PageDefinition, error) {
	key := chi.URLParam(r, "page")
	if key == "" {
		key = homePage
	}
	def, ok := core.GetPage(key)
	if !ok {
		return core.PageDefinition{}, fmt.Errorf("%w: %q", core.ErrPageNotFound, key)
	}
	return def, nil
}

// lookupView resolves the {viewKey} parameter.
func lookupView(r *http.Request) (core.ViewDefinition, error) {
	key := chi.URLParam(r, "viewKey")
	def, ok := core.GetView(key)
	if !ok {
		return core.ViewDefinition{}, fmt.Errorf("%w: %q", core.ErrViewNotFound, key)
	}
	return def, nil
}

// renderView fetches a view's page resources and renders its table.
func (s *Server) renderView(r *http.Request, def core.ViewDefinition) (core.Table, core.Dataset) {
	ds := s.fetch(r, core.ResourcesFor(def))
	return core.RenderView(def, ds, logging.FromContext(r.Context())), ds
}

// notices maps each failed resource to a user message, one per code.
func notices(ds core.Dataset) []core.UserMessage {
	keys := make([]string, 0, len(ds.Errors))
	for k, err := range ds.Errors {
		if err != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	seen := make(map[string]bool)
	var out []core.UserMessage
	for _, k := range keys {
		msg := core.MapError(ds.Errors[k])
		if seen[msg.Code] {
			continue
		}
		seen[msg.Code] = true
		out = append(out, msg)
	}
	return out
}

func (s *Server) summaryData(def core.PageDefinition, ds core.Dataset) templates.SummaryData {
	return templates.SummaryData{
		Page:    def.Info.Key,
		Refresh: s.cfg.Dashboard.RefreshInterval,
		Cards:   core.SummarizePage(def, ds),
		Panels:  core.PagePanels(def, ds),
		Notices: notices(ds),
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// handlePage renders a full page. Summary cards are computed now; tables
// start as loading placeholders that htmx fills from /views/{viewKey}.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	def, err := lookupPage(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	views := core.ViewsForPage(def.Info.Key)
	infos := make([]core.ViewInfo, len(views))
	tables := make([]core.Table, len(views))
	for i, v := range views {
		infos[i] = v.Info
		tables[i] = core.LoadingView(v)
	}

	ds := s.fetch(r, def.Resources)
	body := templates.PageBody(s.summaryData(def, ds), infos, tables)
	render(w, r, http.StatusOK, templates.Layout(s.nav(def.Info.Key), def.Info.Title, def.Info.Subtitle, body))
}

// handleSummary renders the summary partial polled by each page.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	def, err := lookupPage(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	ds := s.fetch(r, def.Resources)
	render(w, r, http.StatusOK, templates.Summary(s.summaryData(def, ds)))
}

// handleView renders one table partial.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	def, err := lookupView(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	table, ds := s.renderView(r, def)
	render(w, r, http.StatusOK, templates.View(def.Info, table, notices(ds)...))
}

// handleDeleteCitizen deletes a citizen in the backend and returns the
// refreshed citizens table.
func (s *Server) handleDeleteCitizen(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil || strings.TrimSpace(id) == "" || id == "." || id == ".." {
		s.respondError(w, r, fmt.Errorf("invalid citizen id %q", chi.URLParam(r, "id")), http.StatusBadRequest)
		return
	}

	logger := logging.WithFields(r.Context(), "citizen_id", id)
	delErr := s.backend.Delete(r.Context(), s.baseURL(r), pages.CitizenDeletePath(id))
	if delErr != nil {
		logger.Warn("citizen delete failed", "error", delErr)
	} else {
		logger.Info("citizen deleted")
	}

	view, ok := core.GetView(citizensView)
	if !isHTMX(r) || !ok {
		switch {
		case delErr != nil:
			s.respondError(w, r, delErr, upstreamStatus(delErr))
		case wantsJSON(r):
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Redirect(w, r, pagePath(view.Info.Page), http.StatusSeeOther)
		}
		return
	}

	table, ds := s.renderView(r, view)
	msgs := notices(ds)
	status := http.StatusOK
	if delErr != nil {
		msgs = append([]core.UserMessage{core.MapError(delErr)}, msgs...)
		status = upstreamStatus(delErr)
	}
	render(w, r, status, templates.View(view.Info, table, msgs...))
}

// handleSettings renders the settings page.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	_, overridden := override(r, s.cfg.Backend)
	body := templates.Settings(templates.SettingsData{
		BaseURL:    s.baseURL(r),
		DefaultURL: s.cfg.Backend.BaseURL,
		Overridden: overridden,
		Allowed:    s.cfg.Backend.AllowedBaseURLs,
	})
	render(w, r, http.StatusOK, templates.Layout(s.nav("settings"), "Settings", "Configure your Smart City system", body))
}

// handleSaveSettings stores the backend override and tests it. Only the
// default and API_ALLOWED_BASE_URLS are accepted. An empty value resets
// this browser to the configured default.
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	target := s.cfg.Backend.BaseURL
	raw := strings.TrimSpace(r.PostFormValue("api_base_url"))
	if raw == "" {
		setBaseURLCookie(w, r, "")
	} else {
		if err := s.cfg.Backend.AllowsBaseURL(raw); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		target = config.NormalizeBaseURL(raw)
		setBaseURLCookie(w, r, target)
	}
	logging.FromContext(r.Context()).Info("backend override saved", "base_url", target, "reset", raw == "")

	if !isHTMX(r) {
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, templates.ConnectionStatus(target, s.backend.Ping(r.Context(), target)))
}

// ConnectionResponse is the JSON result of a connection test.
type ConnectionResponse struct {
	BaseURL string            `json:"baseUrl"`
	OK      bool              `json:"ok"`
	Error   *core.UserMessage `json:"error,omitempty"`
}

// handleTestConnection pings the submitted URL, or the one in effect.
// Backends outside the allow list are reported without being contacted.
func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	target := config.NormalizeBaseURL(r.PostFormValue("api_base_url"))
	if target == "" {
		target = s.baseURL(r)
	}

	start := time.Now()
	err := s.cfg.Backend.AllowsBaseURL(target)
	if err == nil {
		err = s.backend.Ping(r.Context(), target)
	}
	logging.FromContext(r.Context()).Info("connection test",
		"base_url", target,
		"ok", err == nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if wantsJSON(r) {
		resp := ConnectionResponse{BaseURL: target, OK: err == nil}
		if err != nil {
			msg := core.MapError(err)
			resp.Error = &msg
		}
		writeJSON(w, r, resp)
		return
	}
	render(w, r, http.StatusOK, templates.ConnectionStatus(target, err))
}
