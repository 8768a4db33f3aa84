package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"withdrawal-service/internal/logger"
	"withdrawal-service/internal/models"
	"withdrawal-service/internal/services"
	"withdrawal-service/pkg/common"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
	Reports     *services.ReportingService
	Logger      *zap.Logger
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService, reports *services.ReportingService, log *zap.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{
		Withdrawals: withdrawals,
		Reports:     reports,
		Logger:      logger.OrNop(log),
	}
}

type CreateWithdrawalRequest struct {
	DepositID      uint            `json:"depositId" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason" binding:"required"`
	ReasonCategory string          `json:"reasonCategory"`
	Urgency        models.Urgency  `json:"urgency"`
	PlannedDate    *time.Time      `json:"plannedDate"`
	PaymentMethod  string          `json:"paymentMethod"`
	BankDetails    json.RawMessage `json:"bankDetails"`
	Metadata       json.RawMessage `json:"metadata"`
}

func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.Withdrawals.CreateWithdrawal(c.Request.Context(), services.CreateWithdrawalDTO{
		DepositID:      req.DepositID,
		RequesterID:    callerFrom(c).ID,
		Amount:         req.Amount,
		Reason:         req.Reason,
		ReasonCategory: req.ReasonCategory,
		Urgency:        req.Urgency,
		PlannedDate:    req.PlannedDate,
		PaymentMethod:  req.PaymentMethod,
		BankDetails:    req.BankDetails,
		Metadata:       req.Metadata,
		IdempotencyKey: c.GetHeader(HeaderIdempotencyKey),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewCreatedResponse(created, "withdrawal request created"))
}

type listWithdrawalsQuery struct {
	Status       string `form:"status"`
	ApprovalMode string `form:"approvalMode"`
	DepositorID  uint   `form:"depositorId"`
	DepositID    uint   `form:"depositId"`
	From         string `form:"from"`
	To           string `form:"to"`
	Search       string `form:"search"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
	SortBy       string `form:"sortBy"`
	SortDir      string `form:"sortDir"`
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	var q listWithdrawalsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	from, err := parseDate("from", q.From)
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := parseDate("to", q.To)
	if err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.Withdrawals.ListWithdrawals(c.Request.Context(), services.ListWithdrawalsDTO{
		Status:       models.WithdrawalStatus(strings.ToUpper(q.Status)),
		ApprovalMode: models.ApprovalMode(strings.ToUpper(q.ApprovalMode)),
		DepositorID:  q.DepositorID,
		DepositID:    q.DepositID,
		From:         from,
		To:           to,
		Search:       q.Search,
		Page:         q.Page,
		Limit:        q.Limit,
		SortBy:       q.SortBy,
		SortDir:      q.SortDir,
		Caller:       callerFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, common.PaginateResponse(page.Items, page.Total, page.Page, page.Limit, ""))
}

func (h *WithdrawalHandler) Get(c *gin.Context) {
	req, err := h.Withdrawals.GetWithdrawal(c.Request.Context(), c.Param("id"), callerFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(req, "success"))
}

type UpdateWithdrawalRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Reason          *string          `json:"reason"`
	ReasonCategory  *string          `json:"reasonCategory"`
	Urgency         *models.Urgency  `json:"urgency"`
	PlannedDate     *time.Time       `json:"plannedDate"`
	PaymentMethod   *string          `json:"paymentMethod"`
	BankDetails     json.RawMessage  `json:"bankDetails"`
	Metadata        json.RawMessage  `json:"metadata"`
	RecomputeImpact bool             `json:"recomputeImpact"`
}

func (h *WithdrawalHandler) Update(c *gin.Context) {
	var req UpdateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.Withdrawals.UpdateWithdrawal(c.Request.Context(), c.Param("id"), services.UpdateWithdrawalDTO{
		Amount:          req.Amount,
		Reason:          req.Reason,
		ReasonCategory:  req.ReasonCategory,
		Urgency:         req.Urgency,
		PlannedDate:     req.PlannedDate,
		PaymentMethod:   req.PaymentMethod,
		BankDetails:     req.BankDetails,
		Metadata:        req.Metadata,
		RecomputeImpact: req.RecomputeImpact,
	}, callerFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(updated, "withdrawal request updated"))
}

func (h *WithdrawalHandler) Review(c *gin.Context) {
	req, err := h.Withdrawals.StartReview(c.Request.Context(), c.Param("id"), callerFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(req, "review started"))
}

type ApproveWithdrawalRequest struct {
	Comments      string          `json:"comments" binding:"max=1000"`
	PaymentMethod *string         `json:"paymentMethod"`
	BankDetails   json.RawMessage `json:"bankDetails"`
}

func (h *WithdrawalHandler) Approve(c *gin.Context) {
	var body ApproveWithdrawalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
	}

	req, err := h.Withdrawals.ApproveWithdrawal(c.Request.Context(), services.ApproveWithdrawalDTO{
		ID:                    c.Param("id"),
		ApproverID:            callerFrom(c).ID,
		Comments:              body.Comments,
		PaymentMethodOverride: body.PaymentMethod,
		BankDetailsOverride:   body.BankDetails,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(req, "withdrawal request approved"))
}

type RejectWithdrawalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *WithdrawalHandler) Reject(c *gin.Context) {
	var body RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	req, err := h.Withdrawals.RejectWithdrawal(c.Request.Context(), c.Param("id"), callerFrom(c).ID, body.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(req, "withdrawal request rejected"))
}

func (h *WithdrawalHandler) Execute(c *gin.Context) {
	req, err := h.Withdrawals.ExecuteWithdrawal(c.Request.Context(), c.Param("id"), callerFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(req, "withdrawal executed"))
}

func (h *WithdrawalHandler) Complete(c *gin.Context) {
	req, err := h.Withdrawals.CompleteWithdrawal(c.Request.Context(), c.Param("id"), callerFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(req, "withdrawal completed"))
}

func (h *WithdrawalHandler) Delete(c *gin.Context) {
	if err := h.Withdrawals.DeleteWithdrawal(c.Request.Context(), c.Param("id"), callerFrom(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "withdrawal request deleted"))
}

func (h *WithdrawalHandler) TreasuryImpact(c *gin.Context) {
	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}

	summary, err := h.Reports.GetTreasuryImpact(c.Request.Context(), services.DateRange{From: from, To: to})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(summary, "success"))
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", field)
}
