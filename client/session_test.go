package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLoginLowerCasesIdentityAndSetsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"x_token":"tok-1",
			"user":{"name":"Rima Sen","email":"Rima.Sen@SurakshaNet.COM","role":"user"}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	identity, err := c.Login(context.Background(), "Rima.Sen@SurakshaNet.COM", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Email != "rima.sen@surakshanet.com" {
		t.Fatalf("email not lower-cased: %q", identity.Email)
	}
	if c.sessionKey() != "rima.sen@surakshanet.com" {
		t.Fatalf("session key should be the normalized email, got %q", c.sessionKey())
	}
}

func TestSessionKeyFallsBackToAnonymous(t *testing.T) {
	c := New("http://unused.invalid")
	if key := c.sessionKey(); key != "anonymous" {
		t.Fatalf("expected anonymous fallback, got %q", key)
	}
}

func TestLoginRejectedSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Invalid email or password"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Login(context.Background(), "x@y.z", "bad"); err == nil {
		t.Fatalf("expected error on rejected login")
	}
}

func TestLogoutInvalidatesDestinationCache(t *testing.T) {
	var destFetches int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			w.Write([]byte(`{"success":true,"x_token":"tok-1",
				"user":{"name":"Admin","email":"admin@surakshanet.com","role":"admin"}}`))
		case "/api/v1/auth/logout":
			w.Write([]byte(`{"success":true}`))
		case "/api/v1/dest/":
			atomic.AddInt32(&destFetches, 1)
			w.Write([]byte(`{"success":true,"data":[{"id":"1","destinationCode":"HO","isActive":1}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Login(context.Background(), "admin@surakshanet.com", "admin"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := c.Destinations(context.Background(), false, false); err != nil {
		t.Fatalf("destinations: %v", err)
	}
	if _, err := c.Destinations(context.Background(), false, false); err != nil {
		t.Fatalf("destinations: %v", err)
	}
	if destFetches != 1 {
		t.Fatalf("expected one fetch before logout, got %d", destFetches)
	}

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// next session must not see the previous user's cache
	if _, err := c.Login(context.Background(), "admin@surakshanet.com", "admin"); err != nil {
		t.Fatalf("relogin: %v", err)
	}
	if _, err := c.Destinations(context.Background(), false, false); err != nil {
		t.Fatalf("destinations: %v", err)
	}
	if destFetches != 2 {
		t.Fatalf("expected refetch after logout, got %d fetches", destFetches)
	}
}

func TestLogoutClearsIdentityEvenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			w.Write([]byte(`{"success":true,"x_token":"tok-1",
				"user":{"name":"Admin","email":"admin@surakshanet.com","role":"admin"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Login(context.Background(), "admin@surakshanet.com", "admin"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := c.Logout(context.Background()); err == nil {
		t.Fatalf("expected the server error to surface")
	}
	if c.Session() != nil {
		t.Fatalf("identity must be cleared regardless of the server response")
	}
	if c.sessionKey() != "anonymous" {
		t.Fatalf("expected anonymous key after logout, got %q", c.sessionKey())
	}
}
