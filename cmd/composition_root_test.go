package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shipquote/cmd"
	"shipquote/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "app.db"), nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}

func localConfig() cmd.Config {
	return cmd.Config{
		DBDriver:             cmd.DBDriverSQLite,
		RouteProvider:        cmd.RouteProviderStatic,
		RouteCacheTTL:        time.Hour,
		SessionIdleTimeout:   30 * time.Minute,
		SessionSweepSchedule: "0 * * * * *",
	}
}

func TestCompositionRoot(t *testing.T) {
	t.Run("should wire a local setup", func(t *testing.T) {
		app, err := cmd.NewCompositionRoot(localConfig(), openTestDB(t), nil)
		require.NoError(t, err)

		dispatcher, err := app.CreateDispatcher()
		require.NoError(t, err)
		assert.NotNil(t, dispatcher)
		assert.NotNil(t, app.Messenger())

		jobs := app.CreateJobManager()
		require.NoError(t, jobs.StartAll())
		jobs.StopAll()
	})

	t.Run("should wire the cached ors provider", func(t *testing.T) {
		configs := localConfig()
		configs.RouteProvider = cmd.RouteProviderORS
		configs.ORSAPIKey = "key"
		configs.SessionIdleTimeout = 0

		app, err := cmd.NewCompositionRoot(configs, openTestDB(t), nil)
		require.NoError(t, err)

		jobs := app.CreateJobManager()
		require.NoError(t, jobs.StartAll())
		jobs.StopAll()
	})

	t.Run("should load tiers from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tiers.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tiers: [}"), 0o600))

		configs := localConfig()
		configs.TiersFile = path

		_, err := cmd.NewCompositionRoot(configs, openTestDB(t), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("should fail on a bad sweep schedule", func(t *testing.T) {
		configs := localConfig()
		configs.SessionSweepSchedule = "every minute"

		app, err := cmd.NewCompositionRoot(configs, openTestDB(t), nil)
		require.NoError(t, err)

		require.Error(t, app.CreateJobManager().StartAll())
	})
}
