package projections

import (
	"context"

	storagetrainer "fitclub/internal/adapters/storage/trainer"
	"fitclub/internal/application/listutil"
	"fitclub/internal/domain/trainer"
)

// GetTrainerListQuery carries query parameters.
type GetTrainerListQuery struct {
	listutil.ListParams
	Status string
}

// TrainerRow is one trainer prepared for the index view.
type TrainerRow struct {
	trainer.Trainer
	ActivePlans int
	AvgWeeks    float64
}

// GetTrainerListResult carries the query result.
type GetTrainerListResult struct {
	Trainers []TrainerRow
	PageInfo listutil.PageInfo
}

// GetTrainerListDeps holds dependencies for GetTrainerList.
type GetTrainerListDeps struct {
	TrainerStore TrainerStore
}

// QueryGetTrainerList retrieves trainers with their active-plan workload.
// PRE: query params have been parsed with listutil
// POST: Returns trainers matching the filter, each with workload figures
func QueryGetTrainerList(ctx context.Context, query GetTrainerListQuery, deps GetTrainerListDeps) (GetTrainerListResult, error) {
	filter := storagetrainer.ListFilter{
		Name:   query.Search,
		Status: query.Status,
		Limit:  query.PerPage,
		Offset: (query.Page - 1) * query.PerPage,
	}

	trainers, err := deps.TrainerStore.List(ctx, filter)
	if err != nil {
		return GetTrainerListResult{}, err
	}

	workloads, err := deps.TrainerStore.GetWorkloadStats(ctx)
	if err != nil {
		return GetTrainerListResult{}, err
	}
	byTrainer := make(map[string]storagetrainer.Workload, len(workloads))
	for _, w := range workloads {
		byTrainer[w.TrainerID] = w
	}

	rows := make([]TrainerRow, 0, len(trainers))
	for _, t := range trainers {
		row := TrainerRow{Trainer: t}
		if w, ok := byTrainer[t.ID]; ok {
			row.ActivePlans = w.ActivePlans
			row.AvgWeeks = w.AvgWeeks
		}
		rows = append(rows, row)
	}

	stats, err := deps.TrainerStore.GetStats(ctx)
	if err != nil {
		return GetTrainerListResult{}, err
	}

	return GetTrainerListResult{
		Trainers: rows,
		PageInfo: listutil.NewPageInfo(query.Page, query.PerPage, stats.Total),
	}, nil
}
