package projections

import (
	"context"
	"testing"
	"time"

	storagemember "fitclub/internal/adapters/storage/member"
	storagetrainer "fitclub/internal/adapters/storage/trainer"
	storageplan "fitclub/internal/adapters/storage/workoutplan"
	domainMember "fitclub/internal/domain/member"
	domainTrainer "fitclub/internal/domain/trainer"
)

// mockDashMemberStore implements MemberStore for testing.
type mockDashMemberStore struct {
	members  []domainMember.Member
	expiring []domainMember.Member
	stats    storagemember.Stats
}

// GetByID returns a seeded member by ID.
// PRE: id is non-empty
// POST: Returns the seeded member or domainMember.ErrNotFound
func (m *mockDashMemberStore) GetByID(_ context.Context, id string) (domainMember.Member, error) {
	for _, mem := range m.members {
		if mem.ID == id {
			return mem, nil
		}
	}
	return domainMember.Member{}, domainMember.ErrNotFound
}

// List returns all seeded members.
// PRE: filter is valid
// POST: Returns the seeded members
func (m *mockDashMemberStore) List(_ context.Context, _ storagemember.ListFilter) ([]domainMember.Member, error) {
	return m.members, nil
}

// Count returns the number of seeded members.
// PRE: filter is valid
// POST: Returns count >= 0
func (m *mockDashMemberStore) Count(_ context.Context, _ storagemember.ListFilter) (int, error) {
	return len(m.members), nil
}

// ExpiringWithin returns the seeded expiring members.
// PRE: days >= 0
// POST: Returns the seeded expiring members
func (m *mockDashMemberStore) ExpiringWithin(_ context.Context, _ time.Time, _ int) ([]domainMember.Member, error) {
	return m.expiring, nil
}

// GetStats returns the seeded stats.
// PRE: none
// POST: Returns the seeded stats
func (m *mockDashMemberStore) GetStats(_ context.Context, _ time.Time) (storagemember.Stats, error) {
	return m.stats, nil
}

// GetMembershipStats returns empty stats.
// PRE: none
// POST: Returns zero stats
func (m *mockDashMemberStore) GetMembershipStats(_ context.Context, _ time.Time) (storagemember.MembershipStats, error) {
	return storagemember.MembershipStats{ByType: map[string]int{}}, nil
}

// mockDashTrainerStore implements TrainerStore for testing.
type mockDashTrainerStore struct {
	stats storagetrainer.Stats
}

// GetByID returns not found.
// PRE: id is non-empty
// POST: Returns domainTrainer.ErrNotFound
func (m *mockDashTrainerStore) GetByID(_ context.Context, _ string) (domainTrainer.Trainer, error) {
	return domainTrainer.Trainer{}, domainTrainer.ErrNotFound
}

// List returns no trainers.
// PRE: filter is valid
// POST: Returns an empty list
func (m *mockDashTrainerStore) List(_ context.Context, _ storagetrainer.ListFilter) ([]domainTrainer.Trainer, error) {
	return nil, nil
}

// GetStats returns the seeded stats.
// PRE: none
// POST: Returns the seeded stats
func (m *mockDashTrainerStore) GetStats(_ context.Context) (storagetrainer.Stats, error) {
	return m.stats, nil
}

// GetWorkloadStats returns no workloads.
// PRE: none
// POST: Returns an empty list
func (m *mockDashTrainerStore) GetWorkloadStats(_ context.Context) ([]storagetrainer.Workload, error) {
	return nil, nil
}

// mockDashPlanStore implements PlanStore for testing.
type mockDashPlanStore struct {
	stats      storageplan.Stats
	sweepCount int64
	sweepCalls int
}

// GetByID returns not found.
// PRE: id is non-empty
// POST: Returns an empty row
func (m *mockDashPlanStore) GetByID(_ context.Context, _ string) (storageplan.PlanRow, error) {
	return storageplan.PlanRow{}, nil
}

// Search returns no plans.
// PRE: filter is valid
// POST: Returns an empty list
func (m *mockDashPlanStore) Search(_ context.Context, _ storageplan.SearchFilter) ([]storageplan.PlanRow, error) {
	return nil, nil
}

// Count returns zero.
// PRE: filter is valid
// POST: Returns 0
func (m *mockDashPlanStore) Count(_ context.Context, _ storageplan.SearchFilter) (int, error) {
	return 0, nil
}

// ListByMember returns no plans.
// PRE: memberID is non-empty
// POST: Returns an empty list
func (m *mockDashPlanStore) ListByMember(_ context.Context, _ string) ([]storageplan.PlanRow, error) {
	return nil, nil
}

// ListByTrainer returns no plans.
// PRE: trainerID is non-empty
// POST: Returns an empty list
func (m *mockDashPlanStore) ListByTrainer(_ context.Context, _ string) ([]storageplan.PlanRow, error) {
	return nil, nil
}

// CompleteExpired records the sweep call.
// PRE: none
// POST: Returns the seeded sweep count
func (m *mockDashPlanStore) CompleteExpired(_ context.Context, _ time.Time) (int64, error) {
	m.sweepCalls++
	return m.sweepCount, nil
}

// GetStats returns the seeded stats.
// PRE: none
// POST: Returns the seeded stats
func (m *mockDashPlanStore) GetStats(_ context.Context, _ time.Time) (storageplan.Stats, error) {
	return m.stats, nil
}

func TestQueryGetDashboard(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)
	memberStore := &mockDashMemberStore{
		members: []domainMember.Member{
			{ID: "m1", FirstName: "Jane", LastName: "Doe"},
			{ID: "m2", FirstName: "John", LastName: "Smith"},
		},
		expiring: []domainMember.Member{
			{ID: "m1", FirstName: "Jane", LastName: "Doe", ExpiryDate: time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC)},
		},
		stats: storagemember.Stats{Total: 2, Active: 2},
	}
	planStore := &mockDashPlanStore{
		stats:      storageplan.Stats{Total: 3, Active: 1, Completed: 2},
		sweepCount: 2,
	}
	deps := GetDashboardDeps{
		MemberStore:  memberStore,
		TrainerStore: &mockDashTrainerStore{stats: storagetrainer.Stats{Total: 1, Active: 1}},
		PlanStore:    planStore,
	}

	res, err := QueryGetDashboard(context.Background(), deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if planStore.sweepCalls != 1 {
		t.Errorf("sweep called %d times, want 1", planStore.sweepCalls)
	}
	if res.Members.Total != 2 || res.Trainers.Total != 1 || res.Plans.Total != 3 {
		t.Errorf("stats = %+v / %+v / %+v", res.Members, res.Trainers, res.Plans)
	}
	if len(res.RecentMembers) != 2 {
		t.Errorf("RecentMembers = %d, want 2", len(res.RecentMembers))
	}
	if len(res.ExpiringSoon) != 1 {
		t.Fatalf("ExpiringSoon = %d, want 1", len(res.ExpiringSoon))
	}
	if res.ExpiringSoon[0].DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d, want 3", res.ExpiringSoon[0].DaysRemaining)
	}
}
