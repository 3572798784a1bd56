package orchestrators

import (
	"context"
	"log/slog"

	"fitclub/internal/domain/member"
	"fitclub/internal/domain/validate"
	"fitclub/internal/domain/workoutplan"

	"github.com/google/uuid"
)

// PlanStoreForSave defines the store interface needed by the plan writers.
type PlanStoreForSave interface {
	GetByID(ctx context.Context, id string) (workoutplan.Plan, error)
	Save(ctx context.Context, p workoutplan.Plan) error
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// MemberLookup resolves member existence for plan assignment.
type MemberLookup interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// SavePlanDeps holds dependencies for the plan writers.
type SavePlanDeps struct {
	PlanStore   PlanStoreForSave
	MemberStore MemberLookup
}

// ExecuteCreatePlan validates and persists a new workout plan.
// DurationWeeks is derived from the date span; a client-sent duration is
// ignored in favor of the derived value.
// PRE: p is populated from form input
// POST: Plan persisted with a generated ID and Draft status default
func ExecuteCreatePlan(ctx context.Context, deps SavePlanDeps, p workoutplan.Plan) (string, validate.Errors, error) {
	if p.Status == "" {
		p.Status = workoutplan.StatusDraft
	}
	if errs := p.Validate(); errs.Any() {
		return "", errs, nil
	}

	if _, err := deps.MemberStore.GetByID(ctx, p.MemberID); err != nil {
		if err == member.ErrNotFound {
			return "", validate.Errors{"member_id": "Selected member does not exist"}, nil
		}
		return "", nil, err
	}

	p.ID = uuid.New().String()
	p.DurationWeeks = workoutplan.DurationWeeks(p.StartDate, p.EndDate)
	if err := deps.PlanStore.Save(ctx, p); err != nil {
		return "", nil, err
	}

	slog.Info("plan_created", "plan_id", p.ID, "member_id", p.MemberID, "weeks", p.DurationWeeks)
	return p.ID, nil, nil
}

// ExecuteUpdatePlan validates and persists changes to an existing plan.
// PRE: p.ID refers to an existing plan
// POST: Plan row updated with DurationWeeks re-derived from the new dates
func ExecuteUpdatePlan(ctx context.Context, deps SavePlanDeps, p workoutplan.Plan) (validate.Errors, error) {
	existing, err := deps.PlanStore.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if errs := p.Validate(); errs.Any() {
		return errs, nil
	}

	if _, err := deps.MemberStore.GetByID(ctx, p.MemberID); err != nil {
		if err == member.ErrNotFound {
			return validate.Errors{"member_id": "Selected member does not exist"}, nil
		}
		return nil, err
	}

	p.CreatedAt = existing.CreatedAt
	p.DurationWeeks = workoutplan.DurationWeeks(p.StartDate, p.EndDate)
	if err := deps.PlanStore.Save(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("plan_updated", "plan_id", p.ID)
	return nil, nil
}

// ExecuteUpdatePlanStatus transitions a plan to the given status.
// POST: status column updated, other columns untouched
func ExecuteUpdatePlanStatus(ctx context.Context, deps SavePlanDeps, id, status string) error {
	if !workoutplan.IsValidStatus(status) {
		return workoutplan.ErrInvalidStatus
	}
	if err := deps.PlanStore.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	slog.Info("plan_status_changed", "plan_id", id, "status", status)
	return nil
}

// ExecuteDeletePlan removes a workout plan.
func ExecuteDeletePlan(ctx context.Context, deps SavePlanDeps, id string) error {
	if err := deps.PlanStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("plan_deleted", "plan_id", id)
	return nil
}
