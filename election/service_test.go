// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"testing"

	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/identity"
	"github.com/danielhkuo/isoloir/testutil"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return NewService(conn, identity.NewStore(conn)), conn
}

// fakeElectorate lets a test decide who exists without touching electeurs
type fakeElectorate map[int64]bool

func (f fakeElectorate) ElecteurExists(_ context.Context, id int64) (bool, error) {
	return f[id], nil
}
