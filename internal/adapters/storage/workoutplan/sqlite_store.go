package workoutplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fitclub/internal/adapters/storage"
	domain "fitclub/internal/domain/workoutplan"
)

const planColumns = `wp.id, wp.member_id, wp.trainer_id, wp.plan_name, wp.plan_type,
	wp.description, wp.goals, wp.notes, wp.start_date, wp.end_date,
	wp.sessions_per_week, wp.session_duration, wp.duration_weeks,
	wp.difficulty_level, wp.exercises, wp.status, wp.created_at`

const planJoin = `SELECT ` + planColumns + `,
	COALESCE(m.first_name || ' ' || m.last_name, ''),
	COALESCE(m.email, ''),
	COALESCE(t.first_name || ' ' || t.last_name, ''),
	COALESCE(t.email, '')
	FROM workout_plans wp
	LEFT JOIN members m ON wp.member_id = m.id
	LEFT JOIN trainers t ON wp.trainer_id = t.id`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new workout plan store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanPlanRow(scan func(dest ...any) error) (PlanRow, error) {
	var row PlanRow
	var trainerID, planType, description, goals, notes, difficulty sql.NullString
	var sessionsPerWeek, sessionDuration, durationWeeks sql.NullInt64
	var startDate, endDate, exercisesJSON, createdAt string
	err := scan(
		&row.ID,
		&row.MemberID,
		&trainerID,
		&row.PlanName,
		&planType,
		&description,
		&goals,
		&notes,
		&startDate,
		&endDate,
		&sessionsPerWeek,
		&sessionDuration,
		&durationWeeks,
		&difficulty,
		&exercisesJSON,
		&row.Status,
		&createdAt,
		&row.MemberName,
		&row.MemberEmail,
		&row.TrainerName,
		&row.TrainerEmail,
	)
	if err != nil {
		return PlanRow{}, err
	}
	row.TrainerID = trainerID.String
	row.PlanType = planType.String
	row.Description = description.String
	row.Goals = goals.String
	row.Notes = notes.String
	row.DifficultyLevel = difficulty.String
	row.StartDate = storage.ParseDate(startDate)
	row.EndDate = storage.ParseDate(endDate)
	row.SessionsPerWeek = int(sessionsPerWeek.Int64)
	row.SessionDuration = int(sessionDuration.Int64)
	row.DurationWeeks = int(durationWeeks.Int64)
	if exercisesJSON != "" {
		// A malformed exercises column keeps the row readable with an empty list.
		_ = json.Unmarshal([]byte(exercisesJSON), &row.Exercises)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		row.CreatedAt = t
	}
	return row, nil
}

// GetByID retrieves a plan with its member and trainer names.
// PRE: id is non-empty
// POST: Returns the row or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (PlanRow, error) {
	row := s.db.QueryRowContext(ctx, planJoin+" WHERE wp.id = ?", id)
	entity, err := scanPlanRow(row.Scan)
	if err == sql.ErrNoRows {
		return PlanRow{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a plan to the database.
// PRE: entity has been validated; member and trainer references exist
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Plan) error {
	createdAt := entity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	exercises := entity.Exercises
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	exercisesJSON, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("failed to encode exercises: %w", err)
	}

	var trainerID any
	if entity.TrainerID != "" {
		trainerID = entity.TrainerID
	}

	query := `INSERT INTO workout_plans (id, member_id, trainer_id, plan_name, plan_type,
		description, goals, notes, start_date, end_date, sessions_per_week,
		session_duration, duration_weeks, difficulty_level, exercises, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id,
			trainer_id=excluded.trainer_id,
			plan_name=excluded.plan_name,
			plan_type=excluded.plan_type,
			description=excluded.description,
			goals=excluded.goals,
			notes=excluded.notes,
			start_date=excluded.start_date,
			end_date=excluded.end_date,
			sessions_per_week=excluded.sessions_per_week,
			session_duration=excluded.session_duration,
			duration_weeks=excluded.duration_weeks,
			difficulty_level=excluded.difficulty_level,
			exercises=excluded.exercises,
			status=excluded.status`

	_, err = s.db.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		trainerID,
		entity.PlanName,
		entity.PlanType,
		entity.Description,
		entity.Goals,
		entity.Notes,
		storage.FormatDate(entity.StartDate),
		storage.FormatDate(entity.EndDate),
		entity.SessionsPerWeek,
		entity.SessionDuration,
		entity.DurationWeeks,
		entity.DifficultyLevel,
		string(exercisesJSON),
		entity.Status,
		createdAt.Format(time.RFC3339),
	)
	return err
}

// Delete removes a plan from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM workout_plans WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search retrieves plans matching the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching rows with member and trainer names
func (s *SQLiteStore) Search(ctx context.Context, filter SearchFilter) ([]PlanRow, error) {
	where, args := searchWhereClause(filter)
	query := planJoin + where + " ORDER BY wp.created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	return s.queryPlans(ctx, query, args...)
}

// Count returns the number of plans matching the filter.
// PRE: filter has valid parameters
// POST: Returns a count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter SearchFilter) (int, error) {
	where, args := searchWhereClause(filter)
	query := `SELECT COUNT(*) FROM workout_plans wp
		LEFT JOIN members m ON wp.member_id = m.id
		LEFT JOIN trainers t ON wp.trainer_id = t.id` + where
	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func searchWhereClause(filter SearchFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Search != "" {
		where += ` AND (wp.plan_name LIKE ?
			OR (m.first_name || ' ' || m.last_name) LIKE ?
			OR (t.first_name || ' ' || t.last_name) LIKE ?)`
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	if filter.MemberID != "" {
		where += " AND wp.member_id = ?"
		args = append(args, filter.MemberID)
	}
	if filter.TrainerID != "" {
		where += " AND wp.trainer_id = ?"
		args = append(args, filter.TrainerID)
	}
	switch filter.Status {
	case "":
	case "inactive":
		where += " AND wp.status NOT IN ('Active', 'Completed')"
	default:
		where += " AND wp.status = ?"
		args = append(args, filter.Status)
	}
	return where, args
}

// ListByMember retrieves all plans for one member, newest first.
// PRE: memberID is non-empty
// POST: Returns the member's plans
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]PlanRow, error) {
	return s.queryPlans(ctx, planJoin+" WHERE wp.member_id = ? ORDER BY wp.created_at DESC", memberID)
}

// ListByTrainer retrieves all plans assigned to one trainer, newest first.
// PRE: trainerID is non-empty
// POST: Returns the trainer's plans
func (s *SQLiteStore) ListByTrainer(ctx context.Context, trainerID string) ([]PlanRow, error) {
	return s.queryPlans(ctx, planJoin+" WHERE wp.trainer_id = ? ORDER BY wp.created_at DESC", trainerID)
}

// UpdateStatus sets only the plan status.
// PRE: status is a valid plan status
// POST: Status column updated for the row
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.IsValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	result, err := s.db.ExecContext(ctx, "UPDATE workout_plans SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CompleteExpired transitions every Active plan whose end date has passed to
// Completed. Invoked lazily from plan list and stats reads; running it with
// no eligible rows is a no-op.
// PRE: none
// POST: Returns the number of rows transitioned
func (s *SQLiteStore) CompleteExpired(ctx context.Context, today time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE workout_plans SET status = 'Completed' WHERE status = 'Active' AND end_date < ?",
		storage.FormatDate(today))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetStats aggregates plan counts for the dashboard.
// PRE: none
// POST: Returns counts >= 0
func (s *SQLiteStore) GetStats(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM workout_plans`
	err := s.db.QueryRowContext(ctx, query, monthStart.Format(time.RFC3339)).Scan(
		&stats.Total, &stats.Active, &stats.Completed, &stats.PlansThisMonth)
	return stats, err
}

func (s *SQLiteStore) queryPlans(ctx context.Context, query string, args ...any) ([]PlanRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("workout plan query failed: %w", err)
	}
	defer rows.Close()

	var results []PlanRow
	for rows.Next() {
		row, err := scanPlanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Compile-time check that SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
