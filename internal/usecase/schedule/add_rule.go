package schedule

import (
	"context"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/httperr"
	"github.com/NovaClinicSystems/clinic-scheduler/internal/models"
)

type AddAvailabilityRule struct {
	repo  domain.Repository
	cache SlotCache
}

func NewAddAvailabilityRule(repo domain.Repository, cache SlotCache) *AddAvailabilityRule {
	return &AddAvailabilityRule{repo: repo, cache: cache}
}

func (uc *AddAvailabilityRule) Execute(
	ctx context.Context,
	doctorID uint,
	rule models.AvailabilityRule,
) (*models.AvailabilityRule, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	rule.DoctorID = doctorID
	rule.ID = 0

	if err := domain.ValidateRule(&rule); err != nil {
		return nil, err
	}

	if err := uc.repo.AddRule(ctx, &rule); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, doctorID)

	return &rule, nil
}
