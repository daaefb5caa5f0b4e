package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-exam-api/pkg/config"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

func TestResolveBaseURLPriority(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.GatewayConfig
		want string
	}{
		{
			name: "override wins",
			cfg:  config.GatewayConfig{BaseURL: "http://override:9000/", DesktopURL: "http://desktop:3000"},
			want: "http://override:9000",
		},
		{
			name: "desktop before mobile",
			cfg:  config.GatewayConfig{DesktopURL: "http://localhost:3000/api", MobileURL: "https://mobile.example.com/api"},
			want: "http://localhost:3000/api",
		},
		{
			name: "mobile before cloud path",
			cfg:  config.GatewayConfig{MobileURL: "https://mobile.example.com/api", CloudPath: "/hosted/api"},
			want: "https://mobile.example.com/api",
		},
		{
			name: "cloud path before fallback",
			cfg:  config.GatewayConfig{CloudPath: "/hosted/api"},
			want: "/hosted/api",
		},
		{
			name: "relative fallback",
			cfg:  config.GatewayConfig{},
			want: "/api",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveBaseURL(tc.cfg))
		})
	}
}

func newTestClient(url string) *Client {
	return New(config.GatewayConfig{BaseURL: url, Timeout: 2 * time.Second}, nil)
}

func TestClientDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"studentId":"SU-1","name":"Ama"}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	var students []struct {
		StudentID string `json:"studentId"`
		Name      string `json:"name"`
	}
	client := newTestClient(srv.URL)
	err := client.List(context.Background(), "/students", &students)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "SU-1", students[0].StudentID)
}

func TestClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	client.SetToken("token-123")
	_, err := client.Do(context.Background(), http.MethodGet, "/subjects", nil, nil)
	require.NoError(t, err)
}

func TestClientNetworkFailure(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.Do(context.Background(), http.MethodGet, "/students", nil, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNetwork.Code, appErrors.FromError(err).Code)
}

func TestClientRejectsNonEnvelopePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/students", nil, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamPayload.Code, appErrors.FromError(err).Code)
}

func TestClientSurfacesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"student not found"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/students/SU-404", nil, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestClientLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"success":true,"token":"issued-token","data":{"id":"US-1"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	require.NoError(t, client.Login(context.Background(), "head", "pass"))
	assert.Equal(t, "issued-token", client.token)
}
