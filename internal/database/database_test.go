package database_test

import (
	"testing"

	"ordermgr/internal/config"
	"ordermgr/internal/database"
	"ordermgr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesSchema(t *testing.T) {
	db, err := database.Open(config.Config{DBDriver: config.DriverSQLite, DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	for _, model := range []any{&models.Category{}, &models.Product{}, &models.Customer{}, &models.Order{}, &models.OrderItem{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Customer{}, "Email"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.Config{DBDriver: "oracle", DatabaseDSN: "x"})
	assert.Error(t, err)
}
