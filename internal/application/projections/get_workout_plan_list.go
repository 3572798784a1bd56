package projections

import (
	"context"
	"log/slog"
	"time"

	storageplan "fitclub/internal/adapters/storage/workoutplan"
	"fitclub/internal/application/listutil"
	"fitclub/internal/domain/membership"
)

// GetPlanListQuery carries query parameters.
type GetPlanListQuery struct {
	listutil.ListParams
	MemberID  string
	TrainerID string
	Status    string
}

// GetPlanListResult carries the query result.
type GetPlanListResult struct {
	Plans    []storageplan.PlanRow
	PageInfo listutil.PageInfo
	Stats    storageplan.Stats
}

// GetPlanListDeps holds dependencies for GetPlanList.
type GetPlanListDeps struct {
	PlanStore PlanStore
}

// QueryGetPlanList retrieves one page of workout plans with member and
// trainer names. The lazy completion sweep runs first, so a plan whose end
// date has passed never renders as Active.
// PRE: query params have been parsed with listutil
// POST: Returns a page of plans plus stats and pagination metadata
func QueryGetPlanList(ctx context.Context, query GetPlanListQuery, deps GetPlanListDeps, now time.Time) (GetPlanListResult, error) {
	today := membership.Truncate(now)
	if n, err := deps.PlanStore.CompleteExpired(ctx, today); err != nil {
		slog.Warn("plan_sweep_failed", "error", err)
	} else if n > 0 {
		slog.Info("plan_sweep", "completed", n)
	}

	filter := storageplan.SearchFilter{
		Search:    query.Search,
		MemberID:  query.MemberID,
		TrainerID: query.TrainerID,
		Status:    query.Status,
		Limit:     query.PerPage,
		Offset:    (query.Page - 1) * query.PerPage,
	}

	total, err := deps.PlanStore.Count(ctx, filter)
	if err != nil {
		return GetPlanListResult{}, err
	}

	plans, err := deps.PlanStore.Search(ctx, filter)
	if err != nil {
		return GetPlanListResult{}, err
	}

	stats, err := deps.PlanStore.GetStats(ctx, now)
	if err != nil {
		return GetPlanListResult{}, err
	}

	return GetPlanListResult{
		Plans:    plans,
		PageInfo: listutil.NewPageInfo(query.Page, query.PerPage, total),
		Stats:    stats,
	}, nil
}
