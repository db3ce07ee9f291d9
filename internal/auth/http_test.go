package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/kv"
)

func newAuthTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &auth.Server{
		Log:      zap.NewNop(),
		Store:    auth.NewMemStore(),
		Sessions: &auth.SessionStore{KV: kv.NewMemStore(nil)},
		JWT:      auth.NewTokenMaker("test-secret"),
	}
	h := auth.NewHandler(s, auth.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "auth",
	})
	return httptest.NewServer(h)
}

func doAuth(t *testing.T, method, url, token string, body any, out any) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
	}
	return resp
}

func registerBody() map[string]any {
	return map[string]any{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "Password1",
	}
}

func TestRegister_Validation(t *testing.T) {
	ts := newAuthTS(t)
	t.Cleanup(ts.Close)

	var errResp struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	resp := doAuth(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"name":     "",
		"email":    "not-an-email",
		"password": "weak",
	}, &errResp)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := errResp.Details[field]; !ok {
			t.Errorf("missing %q in details: %+v", field, errResp.Details)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newAuthTS(t)
	t.Cleanup(ts.Close)

	if resp := doAuth(t, http.MethodPost, ts.URL+"/auth/register", "", registerBody(), nil); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register status=%d", resp.StatusCode)
	}
	if resp := doAuth(t, http.MethodPost, ts.URL+"/auth/register", "", registerBody(), nil); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status=%d, want 409", resp.StatusCode)
	}
}

func TestLoginWhoAmISignOut(t *testing.T) {
	ts := newAuthTS(t)
	t.Cleanup(ts.Close)

	doAuth(t, http.MethodPost, ts.URL+"/auth/register", "", registerBody(), nil)

	var login struct {
		AccessToken string `json:"access_token"`
		Session     struct {
			UID   string `json:"uid"`
			Email string `json:"email"`
		} `json:"session"`
	}
	resp := doAuth(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"email":    "user@example.com",
		"password": "Password1",
	}, &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d", resp.StatusCode)
	}
	if login.AccessToken == "" || login.Session.UID == "" {
		t.Fatalf("login response: %+v", login)
	}

	var who struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
	}
	resp = doAuth(t, http.MethodGet, ts.URL+"/auth/whoami", login.AccessToken, nil, &who)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("whoami status=%d", resp.StatusCode)
	}
	if who.UID != login.Session.UID || who.Email != "user@example.com" {
		t.Fatalf("whoami: %+v", who)
	}

	resp = doAuth(t, http.MethodPost, ts.URL+"/auth/signout", login.AccessToken, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("signout status=%d", resp.StatusCode)
	}

	// The token still parses but the session record is gone.
	resp = doAuth(t, http.MethodGet, ts.URL+"/auth/whoami", login.AccessToken, nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("whoami after signout status=%d, want 401", resp.StatusCode)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newAuthTS(t)
	t.Cleanup(ts.Close)

	doAuth(t, http.MethodPost, ts.URL+"/auth/register", "", registerBody(), nil)

	resp := doAuth(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"email":    "user@example.com",
		"password": "WrongPass1",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", resp.StatusCode)
	}
}
