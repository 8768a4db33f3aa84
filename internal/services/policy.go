package services

import (
	"github.com/shopspring/decimal"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/models"
)

// Classify routes a withdrawal to an approval mode. Rules apply in order:
// small non-urgent amounts are approved automatically, amounts above the
// committee threshold go to the committee, everything else is manual.
//
// URGENT only forces committee routing when the tenant enables
// UrgentRequiresCommittee; otherwise it merely disqualifies AUTOMATIC.
func Classify(policy config.Policy, amount decimal.Decimal, urgency models.Urgency) models.ApprovalMode {
	if amount.LessThanOrEqual(policy.AutoApprovalThreshold) && urgency != models.UrgencyUrgent {
		return models.ApprovalAutomatic
	}
	if amount.GreaterThan(policy.CommitteeThreshold) ||
		(policy.UrgentRequiresCommittee && urgency == models.UrgencyUrgent) {
		return models.ApprovalCommittee
	}
	return models.ApprovalManual
}
