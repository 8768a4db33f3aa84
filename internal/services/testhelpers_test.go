package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/lock"
	"withdrawal-service/internal/models"
)

// newTestDB opens a private in-memory database. A single connection keeps
// the shared-cache database alive and serializes transactions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Deposit{},
		&models.WithdrawalRequest{},
		&models.TreasuryFlow{},
		&models.AuditLog{},
	))
	return db
}

type recordingSyncer struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *recordingSyncer) EnqueueFlowSync(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	return r.err
}

func (r *recordingSyncer) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

type fixture struct {
	db      *gorm.DB
	svc     *WithdrawalService
	flows   *TreasuryFlowService
	syncer  *recordingSyncer
	now     time.Time
	ctx     context.Context
	policy  config.Policy
	reports *ReportingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	policy := config.DefaultPolicy()
	flows := NewTreasuryFlowService(db, policy, nil)
	syncer := &recordingSyncer{}
	svc := NewWithdrawalService(db, policy, flows, lock.NewLocalLocker(), syncer, nil)

	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	return &fixture{
		db:      db,
		svc:     svc,
		flows:   flows,
		syncer:  syncer,
		now:     now,
		ctx:     context.Background(),
		policy:  policy,
		reports: NewReportingService(db),
	}
}

func (f *fixture) seedDeposit(t *testing.T, depositorID uint, balance int64) *models.Deposit {
	t.Helper()
	d := &models.Deposit{
		DepositorID:    depositorID,
		CurrentBalance: decimal.NewFromInt(balance),
		Currency:       "ILS",
		IsActive:       true,
	}
	require.NoError(t, f.db.Create(d).Error)
	return d
}

func (f *fixture) balance(t *testing.T, depositID uint) decimal.Decimal {
	t.Helper()
	var d models.Deposit
	require.NoError(t, f.db.First(&d, depositID).Error)
	return d.CurrentBalance
}

func (f *fixture) create(t *testing.T, deposit *models.Deposit, amount int64, urgency models.Urgency) *models.WithdrawalRequest {
	t.Helper()
	req, err := f.svc.CreateWithdrawal(f.ctx, CreateWithdrawalDTO{
		DepositID:   deposit.ID,
		RequesterID: deposit.DepositorID,
		Amount:      decimal.NewFromInt(amount),
		Reason:      "tuition payment for the semester",
		Urgency:     urgency,
	})
	require.NoError(t, err)
	return req
}

func (f *fixture) flowsOf(t *testing.T, id string) []models.TreasuryFlow {
	t.Helper()
	var flows []models.TreasuryFlow
	require.NoError(t, f.db.Where("withdrawal_request_id = ?", id).Find(&flows).Error)
	return flows
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
