package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/lock"
	"withdrawal-service/internal/logger"
	"withdrawal-service/internal/models"
)

// WithdrawalService owns the lifecycle of withdrawal requests:
//
//	PENDING -> UNDER_REVIEW -> APPROVED -> PROCESSING -> COMPLETED
//	PENDING/UNDER_REVIEW -> REJECTED
//
// Every transition runs in one transaction that locks the request row and
// bumps its version, so concurrent callers observe each other's result.
type WithdrawalService struct {
	DB     *gorm.DB
	Policy config.Policy
	Ledger Ledger
	Audit  AuditRecorder
	Flows  *TreasuryFlowService
	Locker lock.Locker
	Syncer FlowSyncer
	Logger *zap.Logger
	Now    func() time.Time
}

func NewWithdrawalService(
	db *gorm.DB,
	policy config.Policy,
	flows *TreasuryFlowService,
	locker lock.Locker,
	syncer FlowSyncer,
	log *zap.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		DB:     db,
		Policy: policy,
		Ledger: NewDepositLedger(),
		Audit:  NewAuditService(db),
		Flows:  flows,
		Locker: locker,
		Syncer: syncer,
		Logger: logger.OrNop(log),
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

type CreateWithdrawalDTO struct {
	DepositID      uint `validate:"required"`
	RequesterID    uint `validate:"required"`
	Amount         decimal.Decimal
	Reason         string         `validate:"min=10,max=1000"`
	ReasonCategory string         `validate:"max=50"`
	Urgency        models.Urgency `validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	PlannedDate    *time.Time
	PaymentMethod  string `validate:"max=50"`
	BankDetails    json.RawMessage
	Metadata       json.RawMessage
	// IdempotencyKey makes retries of the same submission return the
	// original request instead of creating a duplicate.
	IdempotencyKey string `validate:"max=100"`
}

func (s *WithdrawalService) CreateWithdrawal(ctx context.Context, data CreateWithdrawalDTO) (*models.WithdrawalRequest, error) {
	if err := validateStruct(data); err != nil {
		return nil, err
	}
	if err := validateAmount(data.Amount); err != nil {
		return nil, err
	}
	if err := validateOpaqueJSON("bankDetails", data.BankDetails); err != nil {
		return nil, err
	}
	if err := validateOpaqueJSON("metadata", data.Metadata); err != nil {
		return nil, err
	}
	if data.Urgency == "" {
		data.Urgency = models.UrgencyNormal
	}

	now := s.Now()
	var (
		created  *models.WithdrawalRequest
		replayed bool
	)

	err := s.Locker.WithLock(ctx, RequestNumberLockKey(now.Year()), func(ctx context.Context) error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if data.IdempotencyKey != "" {
				var existing models.WithdrawalRequest
				err := tx.Where("depositor_id = ? AND idempotency_key = ?", data.RequesterID, data.IdempotencyKey).
					Take(&existing).Error
				if err == nil {
					if existing.DepositID != data.DepositID || !existing.Amount.Equal(data.Amount) {
						return newError(ErrValidation, "idempotency key %q was already used for withdrawal request %s with a different deposit or amount",
							data.IdempotencyKey, existing.RequestNumber)
					}
					created, replayed = &existing, true
					return nil
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("failed to look up idempotency key: %w", err)
				}
			}

			deposit, err := s.Ledger.GetDeposit(ctx, tx, data.DepositID, false)
			if err != nil {
				return err
			}
			if !deposit.IsActive || deposit.DepositorID != data.RequesterID {
				return notFound("deposit", data.DepositID)
			}
			if data.Amount.GreaterThan(deposit.CurrentBalance) {
				return insufficientBalance(data.Amount, deposit.CurrentBalance)
			}

			number, err := NextRequestNumber(ctx, tx, now.Year())
			if err != nil {
				return err
			}

			mode := Classify(s.Policy, data.Amount, data.Urgency)
			req := &models.WithdrawalRequest{
				RequestNumber:    number,
				DepositID:        deposit.ID,
				DepositorID:      data.RequesterID,
				Amount:           data.Amount,
				Urgency:          data.Urgency,
				ReasonCategory:   data.ReasonCategory,
				Reason:           data.Reason,
				ApprovalMode:     mode,
				RequiresApproval: mode != models.ApprovalAutomatic,
				Status:           models.StatusPending,
				RequestDate:      now,
				PaymentMethod:    data.PaymentMethod,
				BankDetails:      datatypes.JSON(data.BankDetails),
				PlannedDate:      data.PlannedDate,
				Metadata:         datatypes.JSON(data.Metadata),
				TreasuryImpact:   datatypes.NewJSONType(ComputeImpact(s.Policy, data.Amount, data.PlannedDate, now)),
				Version:          1,
			}
			if data.IdempotencyKey != "" {
				key := data.IdempotencyKey
				req.IdempotencyKey = &key
			}
			if mode == models.ApprovalAutomatic {
				req.Status = models.StatusApproved
				req.AutoApproved = true
				req.ApprovalDate = &now
				req.ApprovalComments = "automatically approved"
			}

			if err := tx.Create(req).Error; err != nil {
				return fmt.Errorf("failed to create withdrawal request: %w", err)
			}
			if _, err := s.Flows.Record(ctx, tx, req); err != nil {
				return err
			}
			if err := s.Audit.Record(ctx, tx, AuditEntry{
				EntityType: entityWithdrawal,
				EntityID:   req.ID,
				Action:     "CREATE",
				ActorID:    data.RequesterID,
				After:      req,
				Message:    fmt.Sprintf("withdrawal %s requested for %s", number, data.Amount.StringFixed(2)),
			}); err != nil {
				return err
			}
			if req.AutoApproved {
				if err := s.Audit.Record(ctx, tx, AuditEntry{
					EntityType: entityWithdrawal,
					EntityID:   req.ID,
					Action:     "AUTO_APPROVE",
					After:      req,
					Message:    "approved by policy",
				}); err != nil {
					return err
				}
			}

			created = req
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if replayed {
		s.Logger.Info("withdrawal request replayed",
			zap.String("request_number", created.RequestNumber),
			zap.String("idempotency_key", data.IdempotencyKey))
		return created, nil
	}

	s.Logger.Info("withdrawal request created",
		zap.String("request_number", created.RequestNumber),
		zap.String("approval_mode", string(created.ApprovalMode)),
		zap.String("status", string(created.Status)),
		zap.String("amount", created.Amount.StringFixed(2)))
	return created, nil
}

type ListWithdrawalsDTO struct {
	Status       models.WithdrawalStatus
	ApprovalMode models.ApprovalMode
	DepositorID  uint
	DepositID    uint
	From         *time.Time
	To           *time.Time
	Search       string
	Page         int
	Limit        int
	SortBy       string
	SortDir      string
	Caller       Caller
}

type WithdrawalPage struct {
	Items []models.WithdrawalRequest
	Total int64
	Page  int
	Limit int
}

var sortColumns = map[string]string{
	"requestDate":   "request_date",
	"requestNumber": "request_number",
	"amount":        "amount",
	"status":        "status",
	"createdAt":     "created_at",
}

func (s *WithdrawalService) ListWithdrawals(ctx context.Context, data ListWithdrawalsDTO) (WithdrawalPage, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	page := data.Page
	if page < 1 {
		page = 1
	}

	query := s.DB.WithContext(ctx).Model(&models.WithdrawalRequest{})

	// Depositors only ever see their own requests.
	depositorID := data.DepositorID
	if !data.Caller.Privileged() {
		depositorID = data.Caller.ID
	}
	if depositorID != 0 {
		query = query.Where("depositor_id = ?", depositorID)
	}
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.ApprovalMode != "" {
		query = query.Where("approval_mode = ?", data.ApprovalMode)
	}
	if data.DepositID != 0 {
		query = query.Where("deposit_id = ?", data.DepositID)
	}
	if data.From != nil {
		query = query.Where("request_date >= ?", *data.From)
	}
	if data.To != nil {
		query = query.Where("request_date <= ?", *data.To)
	}
	if search := strings.TrimSpace(data.Search); search != "" {
		like := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where("(request_number LIKE ? ESCAPE '!' OR reason LIKE ? ESCAPE '!')", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return WithdrawalPage{}, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	column, ok := sortColumns[data.SortBy]
	if !ok {
		column = "request_date"
	}
	desc := !strings.EqualFold(data.SortDir, "asc")

	var items []models.WithdrawalRequest
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "request_number"}, Desc: desc}).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return WithdrawalPage{}, fmt.Errorf("failed to list withdrawals: %w", err)
	}

	return WithdrawalPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *WithdrawalService) GetWithdrawal(ctx context.Context, id string, caller Caller) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	err := s.DB.WithContext(ctx).Preload("TreasuryFlows").First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("withdrawal request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawal request %s: %w", id, err)
	}
	if !caller.Privileged() && req.DepositorID != caller.ID {
		return nil, newError(ErrForbidden, "withdrawal request %s belongs to another depositor", id)
	}
	return &req, nil
}

type UpdateWithdrawalDTO struct {
	Amount          *decimal.Decimal
	Reason          *string         `validate:"omitempty,min=10,max=1000"`
	ReasonCategory  *string         `validate:"omitempty,max=50"`
	Urgency         *models.Urgency `validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	PlannedDate     *time.Time
	PaymentMethod   *string `validate:"omitempty,max=50"`
	BankDetails     json.RawMessage
	Metadata        json.RawMessage
	RecomputeImpact bool
}

// UpdateWithdrawal lets the depositor amend a request while it is PENDING.
// The approval mode assigned at creation is kept even if amount or urgency
// change.
func (s *WithdrawalService) UpdateWithdrawal(ctx context.Context, id string, patch UpdateWithdrawalDTO, callerID uint) (*models.WithdrawalRequest, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}
	if err := validateOpaqueJSON("bankDetails", patch.BankDetails); err != nil {
		return nil, err
	}
	if err := validateOpaqueJSON("metadata", patch.Metadata); err != nil {
		return nil, err
	}

	return s.transition(ctx, transitionStep{
		id:      id,
		action:  "update",
		actorID: callerID,
		from:    []models.WithdrawalStatus{models.StatusPending},
		authorize: func(req *models.WithdrawalRequest) error {
			if req.DepositorID != callerID {
				return newError(ErrForbidden, "only the depositor may update withdrawal request %s", req.RequestNumber)
			}
			return nil
		},
		apply: func(ctx context.Context, tx *gorm.DB, req *models.WithdrawalRequest) (map[string]interface{}, error) {
			updates := map[string]interface{}{}
			amount, planned := req.Amount, req.PlannedDate

			if patch.Amount != nil && !patch.Amount.Equal(req.Amount) {
				deposit, err := s.Ledger.GetDeposit(ctx, tx, req.DepositID, false)
				if err != nil {
					return nil, err
				}
				if patch.Amount.GreaterThan(deposit.CurrentBalance) {
					return nil, insufficientBalance(*patch.Amount, deposit.CurrentBalance)
				}
				amount = *patch.Amount
				updates["amount"] = amount
			}
			if patch.Reason != nil {
				updates["reason"] = *patch.Reason
			}
			if patch.ReasonCategory != nil {
				updates["reason_category"] = *patch.ReasonCategory
			}
			if patch.Urgency != nil {
				updates["urgency"] = *patch.Urgency
			}
			if patch.PlannedDate != nil {
				planned = patch.PlannedDate
				updates["planned_date"] = *patch.PlannedDate
			}
			if patch.PaymentMethod != nil {
				updates["payment_method"] = *patch.PaymentMethod
			}
			if patch.BankDetails != nil {
				updates["bank_details"] = datatypes.JSON(patch.BankDetails)
			}
			if patch.Metadata != nil {
				updates["metadata"] = datatypes.JSON(patch.Metadata)
			}
			if patch.RecomputeImpact {
				updates["treasury_impact"] = datatypes.NewJSONType(ComputeImpact(s.Policy, amount, planned, s.Now()))
			}
			return updates, nil
		},
	})
}

// StartReview moves a PENDING request under review.
func (s *WithdrawalService) StartReview(ctx context.Context, id string, reviewerID uint) (*models.WithdrawalRequest, error) {
	return s.transition(ctx, transitionStep{
		id:        id,
		action:    "review",
		actorID:   reviewerID,
		from:      []models.WithdrawalStatus{models.StatusPending},
		authorize: notSelf(reviewerID, "review"),
		apply: func(_ context.Context, _ *gorm.DB, _ *models.WithdrawalRequest) (map[string]interface{}, error) {
			now := s.Now()
			return map[string]interface{}{
				"status":            models.StatusUnderReview,
				"review_started_at": &now,
				"reviewed_by":       &reviewerID,
			}, nil
		},
	})
}

type ApproveWithdrawalDTO struct {
	ID                    string
	ApproverID            uint
	Comments              string
	PaymentMethodOverride *string
	BankDetailsOverride   json.RawMessage
}

func (s *WithdrawalService) ApproveWithdrawal(ctx context.Context, data ApproveWithdrawalDTO) (*models.WithdrawalRequest, error) {
	if err := validateOpaqueJSON("bankDetails", data.BankDetailsOverride); err != nil {
		return nil, err
	}

	return s.transition(ctx, transitionStep{
		id:        data.ID,
		action:    "approve",
		actorID:   data.ApproverID,
		from:      []models.WithdrawalStatus{models.StatusPending, models.StatusUnderReview},
		authorize: notSelf(data.ApproverID, "approve"),
		apply: func(ctx context.Context, tx *gorm.DB, req *models.WithdrawalRequest) (map[string]interface{}, error) {
			// The balance may have moved since submission.
			deposit, err := s.Ledger.GetDeposit(ctx, tx, req.DepositID, true)
			if err != nil {
				return nil, err
			}
			if req.Amount.GreaterThan(deposit.CurrentBalance) {
				return nil, insufficientBalance(req.Amount, deposit.CurrentBalance)
			}

			now := s.Now()
			updates := map[string]interface{}{
				"status":            models.StatusApproved,
				"approval_date":     &now,
				"approved_by":       &data.ApproverID,
				"approval_comments": data.Comments,
			}
			if data.PaymentMethodOverride != nil {
				updates["payment_method"] = *data.PaymentMethodOverride
			}
			if data.BankDetailsOverride != nil {
				updates["bank_details"] = datatypes.JSON(data.BankDetailsOverride)
			}
			return updates, nil
		},
	})
}

func (s *WithdrawalService) RejectWithdrawal(ctx context.Context, id string, rejecterID uint, reason string) (*models.WithdrawalRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, newError(ErrValidation, "rejection reason is required")
	}
	if len([]rune(reason)) > 1000 {
		return nil, newError(ErrValidation, "rejection reason must be at most 1000 characters")
	}

	return s.transition(ctx, transitionStep{
		id:      id,
		action:  "reject",
		actorID: rejecterID,
		from:    []models.WithdrawalStatus{models.StatusPending, models.StatusUnderReview},
		apply: func(_ context.Context, _ *gorm.DB, _ *models.WithdrawalRequest) (map[string]interface{}, error) {
			now := s.Now()
			return map[string]interface{}{
				"status":           models.StatusRejected,
				"rejection_date":   &now,
				"rejected_by":      &rejecterID,
				"rejection_reason": reason,
			}, nil
		},
	})
}

// ExecuteWithdrawal debits the deposit and moves the request to PROCESSING
// in a single transaction.
func (s *WithdrawalService) ExecuteWithdrawal(ctx context.Context, id string, executorID uint) (*models.WithdrawalRequest, error) {
	var balance decimal.Decimal
	req, err := s.transition(ctx, transitionStep{
		id:      id,
		action:  "execute",
		actorID: executorID,
		from:    []models.WithdrawalStatus{models.StatusApproved},
		apply: func(ctx context.Context, tx *gorm.DB, req *models.WithdrawalRequest) (map[string]interface{}, error) {
			var err error
			if balance, err = s.Ledger.Debit(ctx, tx, req.DepositID, req.Amount); err != nil {
				return nil, err
			}
			now := s.Now()
			return map[string]interface{}{
				"status":          models.StatusProcessing,
				"processing_date": &now,
				"processed_by":    &executorID,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("deposit debited",
		zap.String("request_number", req.RequestNumber),
		zap.Uint("deposit_id", req.DepositID),
		zap.String("balance", balance.StringFixed(2)))
	return req, nil
}

// CompleteWithdrawal marks a PROCESSING request as paid out.
func (s *WithdrawalService) CompleteWithdrawal(ctx context.Context, id string, actorID uint) (*models.WithdrawalRequest, error) {
	return s.transition(ctx, transitionStep{
		id:      id,
		action:  "complete",
		actorID: actorID,
		from:    []models.WithdrawalStatus{models.StatusProcessing},
		apply: func(_ context.Context, _ *gorm.DB, _ *models.WithdrawalRequest) (map[string]interface{}, error) {
			now := s.Now()
			return map[string]interface{}{
				"status":          models.StatusCompleted,
				"completion_date": &now,
			}, nil
		},
	})
}

// DeleteWithdrawal removes a PENDING or REJECTED request and its flows. Only
// administrators may delete; the audit trail is kept.
func (s *WithdrawalService) DeleteWithdrawal(ctx context.Context, id string, caller Caller) error {
	if caller.Role != RoleAdmin {
		return newError(ErrForbidden, "only administrators may delete withdrawal requests")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := s.lockRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.Status != models.StatusPending && req.Status != models.StatusRejected {
			return invalidState("delete", req.Status)
		}

		if err := tx.Where("withdrawal_request_id = ?", req.ID).Delete(&models.TreasuryFlow{}).Error; err != nil {
			return fmt.Errorf("failed to delete treasury flows: %w", err)
		}
		if err := tx.Delete(&models.WithdrawalRequest{}, "id = ?", req.ID).Error; err != nil {
			return fmt.Errorf("failed to delete withdrawal request: %w", err)
		}
		return s.Audit.Record(ctx, tx, AuditEntry{
			EntityType: entityWithdrawal,
			EntityID:   req.ID,
			Action:     "DELETE",
			ActorID:    caller.ID,
			Before:     req,
			Message:    fmt.Sprintf("withdrawal %s deleted", req.RequestNumber),
		})
	})
	if err != nil {
		return err
	}

	s.Logger.Info("withdrawal request deleted", zap.String("withdrawal_id", id), zap.Uint("actor_id", caller.ID))
	return nil
}

// likeEscaper makes search input match literally. '!' behaves the same as an
// escape character on MySQL and SQLite, unlike backslash.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type transitionStep struct {
	id        string
	action    string
	actorID   uint
	from      []models.WithdrawalStatus
	authorize func(req *models.WithdrawalRequest) error
	apply     func(ctx context.Context, tx *gorm.DB, req *models.WithdrawalRequest) (map[string]interface{}, error)
}

func notSelf(actorID uint, action string) func(*models.WithdrawalRequest) error {
	return func(req *models.WithdrawalRequest) error {
		if req.DepositorID == actorID {
			return newError(ErrForbidden, "depositors cannot %s their own withdrawal request", action)
		}
		return nil
	}
}

func (s *WithdrawalService) lockRequest(ctx context.Context, tx *gorm.DB, id string) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("withdrawal request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawal request %s: %w", id, err)
	}
	return &req, nil
}

// transition is the only write path for existing requests. The flow sync is
// scheduled after the transaction commits.
func (s *WithdrawalService) transition(ctx context.Context, step transitionStep) (*models.WithdrawalRequest, error) {
	var before, after models.WithdrawalRequest

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := s.lockRequest(ctx, tx, step.id)
		if err != nil {
			return err
		}
		before = *req

		if step.authorize != nil {
			if err := step.authorize(req); err != nil {
				return err
			}
		}
		if !statusIn(req.Status, step.from) {
			return invalidState(step.action, req.Status)
		}

		updates, err := step.apply(ctx, tx, req)
		if err != nil {
			return err
		}
		updates["version"] = req.Version + 1

		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND version = ?", req.ID, req.Version).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to %s withdrawal request %s: %w", step.action, req.RequestNumber, res.Error)
		}
		if res.RowsAffected != 1 {
			// Someone else committed a transition first.
			var current models.WithdrawalRequest
			if err := tx.Select("status").First(&current, "id = ?", req.ID).Error; err != nil {
				return fmt.Errorf("failed to reload withdrawal request %s: %w", req.RequestNumber, err)
			}
			return invalidState(step.action, current.Status)
		}

		if err := tx.First(&after, "id = ?", req.ID).Error; err != nil {
			return fmt.Errorf("failed to reload withdrawal request %s: %w", req.RequestNumber, err)
		}
		return s.Audit.Record(ctx, tx, AuditEntry{
			EntityType: entityWithdrawal,
			EntityID:   req.ID,
			Action:     strings.ToUpper(step.action),
			ActorID:    step.actorID,
			Before:     before,
			After:      after,
			Message:    fmt.Sprintf("%s: %s -> %s", after.RequestNumber, before.Status, after.Status),
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("withdrawal request transitioned",
		zap.String("request_number", after.RequestNumber),
		zap.String("action", step.action),
		zap.String("from", string(before.Status)),
		zap.String("to", string(after.Status)),
		zap.Uint("actor_id", step.actorID))

	s.scheduleFlowSync(ctx, after.ID)
	return &after, nil
}

func (s *WithdrawalService) scheduleFlowSync(ctx context.Context, id string) {
	if s.Syncer == nil {
		return
	}
	if err := s.Syncer.EnqueueFlowSync(ctx, id); err != nil {
		// The reconciler picks up whatever is missed here.
		s.Logger.Warn("failed to enqueue treasury flow sync", zap.String("withdrawal_id", id), zap.Error(err))
	}
}

func statusIn(status models.WithdrawalStatus, set []models.WithdrawalStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
