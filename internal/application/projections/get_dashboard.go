package projections

import (
	"context"
	"log/slog"
	"time"

	storagemember "fitclub/internal/adapters/storage/member"
	storagetrainer "fitclub/internal/adapters/storage/trainer"
	storageplan "fitclub/internal/adapters/storage/workoutplan"
	"fitclub/internal/domain/member"
	"fitclub/internal/domain/membership"
)

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore  MemberStore
	TrainerStore TrainerStore
	PlanStore    PlanStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Members  storagemember.Stats
	Trainers storagetrainer.Stats
	Plans    storageplan.Stats

	// Newest sign-ups, capped at five.
	RecentMembers []member.Member
	// Active members whose membership runs out within a week, with
	// the remaining days alongside for rendering.
	ExpiringSoon []ExpiringMember
}

// ExpiringMember pairs a member with the days left on their membership.
type ExpiringMember struct {
	member.Member
	DaysRemaining int
}

// QueryGetDashboard aggregates the counters and attention lists for the
// back-office landing page. Reading the plan stats first runs the lazy
// completion sweep so the Active count reflects the calendar.
// PRE: stores are wired
// POST: Returns aggregated stats; partial failures degrade to zero values
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	var result DashboardResult
	today := membership.Truncate(now)

	if n, err := deps.PlanStore.CompleteExpired(ctx, today); err != nil {
		slog.Warn("plan_sweep_failed", "error", err)
	} else if n > 0 {
		slog.Info("plan_sweep", "completed", n)
	}

	memberStats, err := deps.MemberStore.GetStats(ctx, today)
	if err != nil {
		return DashboardResult{}, err
	}
	result.Members = memberStats

	trainerStats, err := deps.TrainerStore.GetStats(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	result.Trainers = trainerStats

	planStats, err := deps.PlanStore.GetStats(ctx, now)
	if err != nil {
		return DashboardResult{}, err
	}
	result.Plans = planStats

	recent, err := deps.MemberStore.List(ctx, storagemember.ListFilter{
		Sort:  "created_at",
		Dir:   "desc",
		Limit: 5,
	})
	if err == nil {
		result.RecentMembers = recent
	}

	expiring, err := deps.MemberStore.ExpiringWithin(ctx, today, membership.ExpiryWarningDays)
	if err == nil {
		for _, m := range expiring {
			result.ExpiringSoon = append(result.ExpiringSoon, ExpiringMember{
				Member:        m,
				DaysRemaining: membership.DaysUntil(m.ExpiryDate, today),
			})
		}
	}

	return result, nil
}
