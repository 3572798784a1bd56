package trainer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitclub/internal/adapters/storage"
	domain "fitclub/internal/domain/trainer"
)

const trainerColumns = `id, first_name, last_name, email, phone, specialization,
	experience_years, certification, hire_date, status, created_at`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new trainer store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanTrainer(scan func(dest ...any) error) (domain.Trainer, error) {
	var entity domain.Trainer
	var specialization, certification, hireDate sql.NullString
	var experienceYears sql.NullInt64
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Email,
		&entity.Phone,
		&specialization,
		&experienceYears,
		&certification,
		&hireDate,
		&entity.Status,
		&createdAt,
	)
	if err != nil {
		return domain.Trainer{}, err
	}
	entity.Specialization = specialization.String
	entity.ExperienceYears = int(experienceYears.Int64)
	entity.Certification = certification.String
	entity.HireDate = storage.ParseDate(hireDate.String)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}

// GetByID retrieves a Trainer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Trainer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+trainerColumns+" FROM trainers WHERE id = ?", id)
	entity, err := scanTrainer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Trainer{}, domain.ErrNotFound
	}
	return entity, err
}

// GetByEmail retrieves a Trainer by email.
// PRE: email is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Trainer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+trainerColumns+" FROM trainers WHERE email = ?", email)
	entity, err := scanTrainer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Trainer{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Trainer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Trainer) error {
	createdAt := entity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO trainers (` + trainerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name=excluded.first_name,
			last_name=excluded.last_name,
			email=excluded.email,
			phone=excluded.phone,
			specialization=excluded.specialization,
			experience_years=excluded.experience_years,
			certification=excluded.certification,
			hire_date=excluded.hire_date,
			status=excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.FirstName,
		entity.LastName,
		entity.Email,
		entity.Phone,
		entity.Specialization,
		entity.ExperienceYears,
		entity.Certification,
		storage.NullableDate(entity.HireDate),
		entity.Status,
		createdAt.Format(time.RFC3339),
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

// Delete removes a Trainer from the database. Workout plans referencing the
// trainer keep running with trainer_id nulled by the schema's ON DELETE SET
// NULL rule.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trainers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List retrieves trainers matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by name
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Trainer, error) {
	query := "SELECT " + trainerColumns + " FROM trainers WHERE 1=1"
	var args []any

	if filter.Name != "" {
		query += " AND (first_name LIKE ? OR last_name LIKE ?)"
		term := "%" + filter.Name + "%"
		args = append(args, term, term)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY last_name, first_name"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	return s.queryTrainers(ctx, query, args...)
}

// ListActive retrieves all Active trainers, used by plan forms.
// PRE: none
// POST: Returns Active trainers ordered by name
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Trainer, error) {
	query := "SELECT " + trainerColumns + " FROM trainers WHERE status = 'Active' ORDER BY last_name, first_name"
	return s.queryTrainers(ctx, query)
}

// SearchByName finds trainers whose name matches the query (case-insensitive LIKE).
// PRE: limit > 0
// POST: Returns matching trainers ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Trainer, error) {
	q := "SELECT " + trainerColumns + ` FROM trainers
		WHERE first_name LIKE ? OR last_name LIKE ?
		ORDER BY last_name, first_name LIMIT ?`
	term := "%" + query + "%"
	return s.queryTrainers(ctx, q, term, term, limit)
}

// EmailExists checks whether another trainer already uses this email.
// The check is scoped to the trainers table only.
// PRE: email is non-empty
// POST: Returns true if a different row holds the email
func (s *SQLiteStore) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT COUNT(*) FROM trainers WHERE email = ?"
	args := []any{email}
	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetStats aggregates trainer counts for the dashboard.
// PRE: none
// POST: Returns counts >= 0
func (s *SQLiteStore) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'Inactive' THEN 1 ELSE 0 END), 0)
		FROM trainers`
	err := s.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Active, &stats.Inactive)
	return stats, err
}

// GetWorkloadStats returns active-plan counts per Active trainer, busiest first.
// PRE: none
// POST: Returns one row per Active trainer
func (s *SQLiteStore) GetWorkloadStats(ctx context.Context) ([]Workload, error) {
	query := `SELECT t.id, t.first_name, t.last_name,
		COUNT(wp.id), COALESCE(AVG(wp.duration_weeks), 0)
		FROM trainers t
		LEFT JOIN workout_plans wp ON t.id = wp.trainer_id AND wp.status = 'Active'
		WHERE t.status = 'Active'
		GROUP BY t.id, t.first_name, t.last_name
		ORDER BY COUNT(wp.id) DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("workload query failed: %w", err)
	}
	defer rows.Close()

	var results []Workload
	for rows.Next() {
		var w Workload
		if err := rows.Scan(&w.TrainerID, &w.FirstName, &w.LastName, &w.ActivePlans, &w.AvgWeeks); err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) queryTrainers(ctx context.Context, query string, args ...any) ([]domain.Trainer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("trainer query failed: %w", err)
	}
	defer rows.Close()

	var results []domain.Trainer
	for rows.Next() {
		entity, err := scanTrainer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Compile-time check that SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
