package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestResolveCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/8.8.8.8" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != "status,country,countryCode" {
			t.Errorf("fields = %q", got)
		}
		w.Write([]byte(`{"status":"success","country":"United States","countryCode":"US"}`))
	}))
	defer server.Close()

	resolver := NewResolverWithEndpoint(server.URL)
	got := resolver.ResolveCountry(context.Background(), "8.8.8.8")
	if got.Code != "US" || got.Name != "United States" {
		t.Errorf("got %+v", got)
	}
}

func TestResolveCountrySkipsNonRoutable(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	resolver := NewResolverWithEndpoint(server.URL)
	for _, ip := range []string{"127.0.0.1", "10.0.0.5", "192.168.1.1", "", "garbage"} {
		if got := resolver.ResolveCountry(context.Background(), ip); !got.IsZero() {
			t.Errorf("ResolveCountry(%q) = %+v, want zero", ip, got)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("upstream called %d times for non-routable input", n)
	}
}

func TestResolveCountryFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream fail status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"fail"}`))
			},
		},
		{
			name: "missing country code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"success","country":"Somewhere"}`))
			},
		},
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			resolver := NewResolverWithEndpoint(server.URL)
			if got := resolver.ResolveCountry(context.Background(), "8.8.8.8"); !got.IsZero() {
				t.Errorf("got %+v, want zero", got)
			}
		})
	}
}

func TestResolveCountryUnreachableUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed up front, every request errors

	resolver := NewResolverWithEndpoint(server.URL)
	if got := resolver.ResolveCountry(context.Background(), "8.8.8.8"); !got.IsZero() {
		t.Errorf("got %+v, want zero", got)
	}
}

func TestResolveCountryIgnoresCanceledCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","country":"Germany","countryCode":"DE"}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Lookup carries its own deadline, so a dead caller context must not
	// abort it.
	resolver := NewResolverWithEndpoint(server.URL)
	if got := resolver.ResolveCountry(ctx, "8.8.8.8"); got.Code != "DE" {
		t.Errorf("got %+v, want DE", got)
	}
}
