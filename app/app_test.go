package app

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jekabolt/wedding-rsvp/config"
	httpapi "github.com/jekabolt/wedding-rsvp/internal/api/http"
	"github.com/jekabolt/wedding-rsvp/internal/store/bunt"
	"github.com/jekabolt/wedding-rsvp/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Type: config.StoreBunt,
			Bunt: bunt.Config{Path: filepath.Join(t.TempDir(), "rsvps.db")},
		},
		HTTP: httpapi.Config{Address: "127.0.0.1", Port: "0"},
		Site: view.Site{Title: "Test", Couple: "A & B"},
	}
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestApp_StartServeStop(t *testing.T) {
	ctx := context.Background()
	a := New(testConfig(t))
	require.NoError(t, a.Start(ctx))
	base := "http://" + a.Addr()

	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	code, body := post(t, base+"/api/frontend/rsvp/lookup", `{"email":"New@X.com"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"success":false,"error":"No RSVP found for this email address"}`, body)

	code, body = post(t, base+"/api/frontend/rsvp", `{"name":"Jo","email":"jo@x.com","numberOfGuests":2,"attending":true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"message":"RSVP submitted successfully"}`, body)

	code, body = post(t, base+"/api/frontend/rsvp", `{"name":"Jo","email":"JO@x.com","numberOfGuests":3,"attending":true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"message":"RSVP updated successfully"}`, body)

	resp, err = http.Get(base + "/api/admin/rsvps")
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"summary":{"submitted":1,"attending":1,"declined":0,"totalGuests":3,"checkedOnly":1}`)

	require.NoError(t, a.Stop(ctx))
	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("app did not exit")
	}
}

func TestApp_UnknownStore(t *testing.T) {
	c := testConfig(t)
	c.Store.Type = "redis"
	a := New(c)
	assert.Error(t, a.Start(context.Background()))
	assert.NoError(t, a.Stop(context.Background()))
}
