package restaurant

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/entities"
)

// Claim lifecycle:
//
//	None -> Pending -> Verified
//	             \--> Rejected -> Pending
//
// Verified is terminal.
var (
	submitFrom = []entities.ClaimStatus{entities.ClaimStatusNone, entities.ClaimStatusRejected}
	reviewFrom = []entities.ClaimStatus{entities.ClaimStatusPending}
)

func CanSubmitClaim(current entities.ClaimStatus) bool {
	return inStates(current, submitFrom)
}

func CanReviewClaim(current entities.ClaimStatus) bool {
	return inStates(current, reviewFrom)
}

// ParseReviewTarget accepts only the two review outcomes.
func ParseReviewTarget(s string) (entities.ClaimStatus, error) {
	switch entities.ClaimStatus(s) {
	case entities.ClaimStatusVerified, entities.ClaimStatusRejected:
		return entities.ClaimStatus(s), nil
	default:
		return "", domain.ErrInvalidClaimTarget
	}
}

// OwnershipFor keeps ownership type and claim status in lockstep.
func OwnershipFor(status entities.ClaimStatus) entities.OwnershipType {
	if status == entities.ClaimStatusVerified {
		return entities.OwnershipOwnerManaged
	}
	return entities.OwnershipCommunity
}

func inStates(current entities.ClaimStatus, states []entities.ClaimStatus) bool {
	for _, s := range states {
		if current == s {
			return true
		}
	}
	return false
}
