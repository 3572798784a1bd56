package projections

import (
	"context"
	"time"

	"fitclub/internal/adapters/storage/member"
	"fitclub/internal/adapters/storage/trainer"
	"fitclub/internal/adapters/storage/workoutplan"
	domainMember "fitclub/internal/domain/member"
	domainTrainer "fitclub/internal/domain/trainer"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	List(ctx context.Context, filter member.ListFilter) ([]domainMember.Member, error)
	Count(ctx context.Context, filter member.ListFilter) (int, error)
	ExpiringWithin(ctx context.Context, today time.Time, days int) ([]domainMember.Member, error)
	GetStats(ctx context.Context, today time.Time) (member.Stats, error)
	GetMembershipStats(ctx context.Context, today time.Time) (member.MembershipStats, error)
}

// TrainerStore interface for trainer queries.
type TrainerStore interface {
	GetByID(ctx context.Context, id string) (domainTrainer.Trainer, error)
	List(ctx context.Context, filter trainer.ListFilter) ([]domainTrainer.Trainer, error)
	GetStats(ctx context.Context) (trainer.Stats, error)
	GetWorkloadStats(ctx context.Context) ([]trainer.Workload, error)
}

// PlanStore interface for workout plan queries.
type PlanStore interface {
	GetByID(ctx context.Context, id string) (workoutplan.PlanRow, error)
	Search(ctx context.Context, filter workoutplan.SearchFilter) ([]workoutplan.PlanRow, error)
	Count(ctx context.Context, filter workoutplan.SearchFilter) (int, error)
	ListByMember(ctx context.Context, memberID string) ([]workoutplan.PlanRow, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]workoutplan.PlanRow, error)
	CompleteExpired(ctx context.Context, today time.Time) (int64, error)
	GetStats(ctx context.Context, now time.Time) (workoutplan.Stats, error)
}
