package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New(`Get "http://localhost:8000/complaints": dial tcp 127.0.0.1:8000: connect: connection refused`),
			wantCode:    "API001",
			wantMessage: "Unable to reach the backend service",
		},
		{
			name:        "unknown host maps to unreachable",
			err:         errors.New("dial tcp: lookup api.invalid: no such host"),
			wantCode:    "API001",
			wantMessage: "Unable to reach the backend service",
		},
		{
			name:        "client timeout maps correctly",
			err:         errors.New("Client.Timeout exceeded while awaiting headers"),
			wantCode:    "API002",
			wantMessage: "The backend took too long to respond",
		},
		{
			name:        "not found status maps correctly",
			err:         errors.New("backend /stats: HTTP 404: Not Found"),
			wantCode:    "API003",
			wantMessage: "The backend does not provide this resource",
		},
		{
			name:        "server error status maps correctly",
			err:         errors.New("backend /routes: HTTP 503: Service Unavailable"),
			wantCode:    "API004",
			wantMessage: "The backend reported an internal error",
		},
		{
			name:        "html instead of json maps to bad response",
			err:         errors.New("decode response: invalid character '<' looking for beginning of value"),
			wantCode:    "API005",
			wantMessage: "The backend returned data that could not be read",
		},
		{
			name:        "unlisted backend maps to settings error",
			err:         errors.New(`base url not allowed: "http://10.0.0.5"`),
			wantCode:    "SET002",
			wantMessage: "The API base URL is not an approved backend",
		},
		{
			name:        "bad scheme maps to settings error",
			err:         errors.New(`Get "ftp://x/citizens": unsupported protocol scheme "ftp"`),
			wantCode:    "SET001",
			wantMessage: "The API base URL is not a valid http(s) URL",
		},
		{
			name:        "wrapped view lookup maps correctly",
			err:         fmt.Errorf("render %q: %w", "bogus", ErrViewNotFound),
			wantCode:    "VIEW002",
			wantMessage: "The requested table does not exist",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("CONNECTION REFUSED"),
			wantCode:    "API001",
			wantMessage: "Unable to reach the backend service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := errors.New("dial tcp: connection refused")
	result := FormatUserError(err)

	expected := "Unable to reach the backend service (Code: API001). Check the API base URL in Settings"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  errors.New("connection refused"),
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
