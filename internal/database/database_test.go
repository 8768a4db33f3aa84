package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"withdrawal-service/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Database{User: "gmah", Password: "secret", Host: "db", Port: "3306", Name: "treasury"})
	assert.Equal(t, "gmah:secret@tcp(db:3306)/treasury?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
}

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// Running twice must be harmless.
	require.NoError(t, Migrate(db))

	for _, table := range []string{"deposits", "withdrawal_requests", "treasury_flows", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("withdrawal_requests", "idx_withdrawal_idempotency"))
}
