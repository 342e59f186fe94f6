package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/civicdash/internal/config"
	"github.com/JonMunkholm/civicdash/internal/core"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	return New(config.BackendConfig{
		Timeout:       2 * time.Second,
		PageLimit:     25,
		MaxConcurrent: 2,
	}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestFetch_CollectionQuery(t *testing.T) {
	var gotQuery, gotPath, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[{"citizen_id": 12345678901234567, "name": "Asha"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	body, err := c.Fetch(context.Background(), srv.URL+"/", core.Resource{Key: "citizens", Path: "/citizens"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotPath != "/citizens" {
		t.Errorf("path = %q, want /citizens", gotPath)
	}
	if gotQuery != "limit=25&skip=0" {
		t.Errorf("query = %q, want limit=25&skip=0", gotQuery)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID header not set")
	}

	rows, ok := body.([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("body = %#v, want one-element array", body)
	}
	id := rows[0].(map[string]any)["citizen_id"]
	if id != json.Number("12345678901234567") {
		t.Errorf("citizen_id = %#v, want json.Number", id)
	}
}

func TestFetch_SingleResourceHasNoPaging(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"total_citizens": 10}`))
	}))
	defer srv.Close()

	body, err := newTestClient(t).Fetch(context.Background(), srv.URL, core.Resource{Key: "stats", Path: "/stats", Single: true})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want none", gotQuery)
	}
	if _, ok := body.(map[string]any); !ok {
		t.Errorf("body = %#v, want object", body)
	}
}

func TestFetch_ForwardsRequestID(t *testing.T) {
	var gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "host/abc-000001")
	if _, err := newTestClient(t).Fetch(ctx, srv.URL, core.Resource{Key: "routes", Path: "/routes"}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotReqID != "host/abc-000001" {
		t.Errorf("X-Request-ID = %q, want host/abc-000001", gotReqID)
	}
}

func TestFetch_APIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{name: "detail string", status: 404, body: `{"detail": "Citizen not found"}`, wantMessage: "Citizen not found", wantCode: "API003"},
		{name: "message field", status: 500, body: `{"message": "database down"}`, wantMessage: "database down", wantCode: "API004"},
		{name: "detail list", status: 422, body: `{"detail": [{"msg": "bad"}]}`, wantMessage: `[{"msg":"bad"}]`, wantCode: "ERR000"},
		{name: "other json", status: 400, body: `{"error": "nope"}`, wantMessage: `{"error": "nope"}`, wantCode: "ERR000"},
		{name: "html body", status: 502, body: `<html>Bad Gateway</html>`, wantMessage: "HTTP 502: Bad Gateway", wantCode: "API004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t).Fetch(context.Background(), srv.URL, core.Resource{Key: "x", Path: "/x"})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if got := core.MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestFetch_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!doctype html><p>dashboard</p>`))
	}))
	defer srv.Close()

	_, err := newTestClient(t).Fetch(context.Background(), srv.URL, core.Resource{Key: "buses", Path: "/buses"})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("error = %v, want decode response error", err)
	}
	if got := core.MapError(err).Code; got != "API005" {
		t.Errorf("MapError().Code = %q, want API005", got)
	}
}

func TestFetchDataset_RecordsFailures(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		switch r.URL.Path {
		case "/complaints":
			w.Write([]byte(`[{"complaint_id": 1}]`))
		case "/complaint-updates":
			w.Write([]byte(`[]`))
		case "/stats":
			w.Write([]byte(`{"total_citizens": 3}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail": "boom"}`))
		}
	}))
	defer srv.Close()

	resources := []core.Resource{
		{Key: "complaints", Path: "/complaints"},
		{Key: "complaint_updates", Path: "/complaint-updates"},
		{Key: "stats", Path: "/stats", Single: true},
		{Key: "trucks", Path: "/trucks"},
	}

	before := time.Now()
	ds := newTestClient(t).FetchDataset(context.Background(), srv.URL, resources)

	for _, key := range []string{"complaints", "complaint_updates", "stats"} {
		if !ds.Loaded(key) {
			t.Errorf("Loaded(%s) = false, errors: %v", key, ds.Errors)
		}
	}
	if ds.Loaded("trucks") || ds.Errors["trucks"] == nil {
		t.Errorf("trucks should be recorded as failed, errors: %v", ds.Errors)
	}
	if ds.Raw("trucks") != nil {
		t.Errorf("Raw(trucks) = %v, want nil", ds.Raw("trucks"))
	}
	if got := len(ds.Collection("complaints")); got != 1 {
		t.Errorf("len(complaints) = %d, want 1", got)
	}
	if ds.FetchedAt.Before(before) {
		t.Errorf("FetchedAt = %v, want after %v", ds.FetchedAt, before)
	}
	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrent requests = %d, want <= 2", p)
	}
}

func TestFetchDataset_UnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	ds := newTestClient(t).FetchDataset(context.Background(), base, []core.Resource{{Key: "routes", Path: "/routes"}})
	if ds.Loaded("routes") || ds.Errors["routes"] == nil {
		t.Fatalf("expected routes failure, got %+v", ds)
	}
	if got := core.MapError(ds.Errors["routes"]).Code; got != "API001" {
		t.Errorf("MapError().Code = %q, want API001 (err: %v)", got, ds.Errors["routes"])
	}
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.URL.Path == "/citizens/404" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Citizen not found"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t)
	if err := c.Delete(context.Background(), srv.URL, "/citizens/7"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if diff := cmp.Diff([]string{http.MethodDelete, "/citizens/7"}, []string{gotMethod, gotPath}); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}

	err := c.Delete(context.Background(), srv.URL, "/citizens/404")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("Delete(missing) error = %v, want 404 APIError", err)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead || r.URL.Path != "/docs" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t)
	if err := c.Ping(context.Background(), srv.URL); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	err := c.Ping(context.Background(), "localhost:8000")
	if got := core.MapError(err).Code; got != "SET001" {
		t.Errorf("Ping(bad url) code = %q, want SET001 (err: %v)", got, err)
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		err  *APIError
		want string
	}{
		{&APIError{Status: 404, Message: "Citizen not found"}, "HTTP 404: Citizen not found"},
		{&APIError{Status: 503, Message: "HTTP 503: Service Unavailable"}, "HTTP 503: Service Unavailable"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		path    string
		query   url.Values
		want    string
		wantErr bool
	}{
		{name: "root", base: "http://api:8000", path: "/citizens", want: "http://api:8000/citizens"},
		{name: "trailing slash", base: "http://api:8000/", path: "/citizens", want: "http://api:8000/citizens"},
		{name: "base path kept", base: "https://city.example/v1", path: "/trucks", want: "https://city.example/v1/trucks"},
		{name: "query", base: "http://api", path: "/routes", query: url.Values{"limit": {"5"}}, want: "http://api/routes?limit=5"},
		{name: "escaped id", base: "http://api", path: "/citizens/a%20b", want: "http://api/citizens/a%20b"},
		{name: "fragment base", base: "http://internal/admin/users/1#", path: "/citizens/7", wantErr: true},
		{name: "query base", base: "http://internal/admin?x=", path: "/citizens/7", wantErr: true},
		{name: "credentials", base: "http://u:p@internal", path: "/docs", wantErr: true},
		{name: "dot segments", base: "http://api/v1", path: "/citizens/..", wantErr: true},
		{name: "escaped dot segments", base: "http://api/v1", path: "/citizens/%2e%2e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := joinURL(tt.base, tt.path, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("joinURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("joinURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDelete_FragmentBaseSendsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(t)
	err := c.Delete(context.Background(), srv.URL+"/admin/users/1#", "/citizens/7")
	if got := core.MapError(err).Code; got != "SET001" {
		t.Errorf("Delete() code = %q, want SET001 (err: %v)", got, err)
	}
	if hits.Load() != 0 {
		t.Errorf("backend received %d requests, want 0", hits.Load())
	}
}
