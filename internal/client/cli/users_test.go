package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()
	stubInputs(t, "root@lab.example", []byte("polonium1898"))

	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/users/login" {
			require.NoError(t, json.NewEncoder(w).Encode(loginResponse()))
			return
		}
		handler(w, r)
	}))
	require.NoError(t, app.Login(context.Background()))
	return app
}

func TestList(t *testing.T) {
	app := newAdminApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": []map[string]any{
				{"id": "u2", "email": "marie@lab.example", "role": "consumer", "accountEnabled": false},
			},
		}))
	})

	assert.NoError(t, app.list(context.Background()))
}

func TestSetEnabled(t *testing.T) {
	var gotPath string
	var gotBody map[string]bool
	app := newAdminApp(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"status": "success"}))
	})

	require.NoError(t, app.setEnabled(context.Background(), "u2", true))
	assert.Equal(t, "/users/u2/enabled", gotPath)
	assert.True(t, gotBody["enabled"])

	require.NoError(t, app.setEnabled(context.Background(), "u2", false))
	assert.False(t, gotBody["enabled"])
}

func TestDispatch_UnknownCommand(t *testing.T) {
	app := newAdminApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"status": "success"}))
	})

	assert.NoError(t, app.dispatch(context.Background(), "frobnicate", nil))
}

func TestDispatch_EnableWithoutArgs(t *testing.T) {
	called := false
	app := newAdminApp(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"status": "success"}))
	})

	require.NoError(t, app.dispatch(context.Background(), "enable", nil))
	assert.False(t, called)
}
