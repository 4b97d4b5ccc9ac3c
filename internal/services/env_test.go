package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/testutil"
)

// testEnv is one rolled-back transaction per test, shared by the service
// integration tests. Skipped unless TEST_POSTGRES_DSN is set.
type testEnv struct {
	ctx context.Context
	tx  *gorm.DB
	log *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	return &testEnv{
		ctx: context.Background(),
		tx:  testutil.Tx(t, db),
		log: testutil.Logger(t),
	}
}
