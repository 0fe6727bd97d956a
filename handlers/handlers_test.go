// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/isoloir/cliparse"
	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/election"
	"github.com/danielhkuo/isoloir/identity"
	"github.com/danielhkuo/isoloir/middleware"
	"github.com/danielhkuo/isoloir/testutil"
)

type testEnv struct {
	db    *db.DB
	cfg   cliparse.Config
	svc   *election.Service
	store *identity.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	store := identity.NewStore(conn)
	return &testEnv{
		db:    conn,
		cfg:   testutil.GetTestConfig(),
		svc:   election.NewService(conn, store),
		store: store,
	}
}

// serve runs one request through h and returns the recorder
func serve(h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, headers)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// asElecteur wraps h the way the router protects elector routes
func (e *testEnv) asElecteur(h http.HandlerFunc) http.Handler {
	return middleware.RequireElecteur(e.cfg.SessionKeySalt)(h)
}

func (e *testEnv) electeurHeader(id int64) map[string]string {
	return map[string]string{middleware.HeaderElecteurKey: testutil.ElecteurKey(e.cfg, id)}
}
