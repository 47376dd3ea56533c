package schedule

import (
	"context"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
)

type RemoveAvailabilityRule struct {
	repo  domain.Repository
	cache SlotCache
}

func NewRemoveAvailabilityRule(repo domain.Repository, cache SlotCache) *RemoveAvailabilityRule {
	return &RemoveAvailabilityRule{repo: repo, cache: cache}
}

func (uc *RemoveAvailabilityRule) Execute(
	ctx context.Context,
	doctorID uint,
	ruleID uint,
) error {

	if _, err := uc.repo.GetRule(ctx, doctorID, ruleID); err != nil {
		return httperr.ErrBusiness("rule_not_found")
	}

	if err := uc.repo.RemoveRule(ctx, doctorID, ruleID); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, doctorID)

	return nil
}
