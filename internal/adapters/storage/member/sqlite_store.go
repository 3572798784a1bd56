package member

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitclub/internal/adapters/storage"
	domain "fitclub/internal/domain/member"
)

const memberColumns = `id, first_name, last_name, email, phone, address, date_of_birth,
	emergency_contact_name, emergency_contact_phone, membership_type, status,
	membership_start_date, membership_expiry_date, created_at`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// scanMember reads one member row from a row scanner.
func scanMember(scan func(dest ...any) error) (domain.Member, error) {
	var entity domain.Member
	var address, dob, ecName, ecPhone, startDate, expiryDate sql.NullString
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Email,
		&entity.Phone,
		&address,
		&dob,
		&ecName,
		&ecPhone,
		&entity.MembershipType,
		&entity.Status,
		&startDate,
		&expiryDate,
		&createdAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	entity.Address = address.String
	entity.DateOfBirth = storage.ParseDate(dob.String)
	entity.EmergencyContactName = ecName.String
	entity.EmergencyContactPhone = ecPhone.String
	entity.StartDate = storage.ParseDate(startDate.String)
	entity.ExpiryDate = storage.ParseDate(expiryDate.String)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE id = ?", id)
	entity, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Member{}, domain.ErrNotFound
	}
	return entity, err
}

// GetByEmail retrieves a Member by email.
// PRE: email is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE email = ?", email)
	entity, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Member{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	createdAt := entity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO members (` + memberColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name=excluded.first_name,
			last_name=excluded.last_name,
			email=excluded.email,
			phone=excluded.phone,
			address=excluded.address,
			date_of_birth=excluded.date_of_birth,
			emergency_contact_name=excluded.emergency_contact_name,
			emergency_contact_phone=excluded.emergency_contact_phone,
			membership_type=excluded.membership_type,
			status=excluded.status,
			membership_start_date=excluded.membership_start_date,
			membership_expiry_date=excluded.membership_expiry_date`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.FirstName,
		entity.LastName,
		entity.Email,
		entity.Phone,
		entity.Address,
		storage.NullableDate(entity.DateOfBirth),
		entity.EmergencyContactName,
		entity.EmergencyContactPhone,
		entity.MembershipType,
		entity.Status,
		storage.NullableDate(entity.StartDate),
		storage.NullableDate(entity.ExpiryDate),
		createdAt.Format(time.RFC3339),
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

// Delete removes a Member from the database. Workout plans referencing the
// member are removed by the schema's ON DELETE CASCADE rule.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Name != "" {
		where += " AND (first_name LIKE ? OR last_name LIKE ?)"
		term := "%" + filter.Name + "%"
		args = append(args, term, term)
	}
	if filter.MembershipType != "" {
		where += " AND membership_type = ?"
		args = append(args, filter.MembershipType)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.ExpiryBefore.IsZero() {
		where += " AND membership_expiry_date <= ?"
		args = append(args, storage.FormatDate(filter.ExpiryBefore))
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"first_name":             "first_name",
		"last_name":              "last_name",
		"email":                  "email",
		"membership_expiry_date": "membership_expiry_date",
		"created_at":             "created_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY created_at DESC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the total number of members matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members"+where, args...).Scan(&count)
	return count, err
}

// List retrieves members matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + memberColumns + " FROM members" + where + sortClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	return s.queryMembers(ctx, query, args...)
}

// SearchByName finds members whose name matches the query (case-insensitive LIKE).
// PRE: limit > 0
// POST: Returns matching members ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	q := "SELECT " + memberColumns + ` FROM members
		WHERE first_name LIKE ? OR last_name LIKE ?
		ORDER BY last_name, first_name LIMIT ?`
	term := "%" + query + "%"
	return s.queryMembers(ctx, q, term, term, limit)
}

// EmailExists checks whether another member already uses this email.
// The check is scoped to the members table only; the same address on a
// trainer does not count.
// PRE: email is non-empty
// POST: Returns true if a different row holds the email
func (s *SQLiteStore) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT COUNT(*) FROM members WHERE email = ?"
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

// UpdateStatus sets only the membership status, used by the lazy expiry sweep.
// PRE: id is non-empty, status is a valid member status
// POST: Status column updated for the row
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE members SET status = ? WHERE id = ?", status, id)
	return err
}

// UpdateMembership sets the expiry date and status in one statement, used by renewal.
// PRE: id is non-empty
// POST: Expiry and status updated for the row
func (s *SQLiteStore) UpdateMembership(ctx context.Context, id string, expiry time.Time, status string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE members SET membership_expiry_date = ?, status = ? WHERE id = ?",
		storage.FormatDate(expiry), status, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExpiringWithin lists Active members whose expiry falls within the next N days.
// PRE: days >= 0
// POST: Returns members ordered by expiry date ascending
func (s *SQLiteStore) ExpiringWithin(ctx context.Context, today time.Time, days int) ([]domain.Member, error) {
	cutoff := today.AddDate(0, 0, days)
	q := "SELECT " + memberColumns + ` FROM members
		WHERE membership_expiry_date <= ? AND status = 'Active'
		ORDER BY membership_expiry_date ASC`
	return s.queryMembers(ctx, q, storage.FormatDate(cutoff))
}

// GetStats aggregates member counts for the dashboard.
// PRE: none
// POST: Returns counts >= 0
func (s *SQLiteStore) GetStats(ctx context.Context, today time.Time) (Stats, error) {
	var stats Stats
	soonCutoff := storage.FormatDate(today.AddDate(0, 0, 30))
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'Expired' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'Active' AND membership_expiry_date <= ? THEN 1 ELSE 0 END), 0)
		FROM members`
	err := s.db.QueryRowContext(ctx, query, soonCutoff).Scan(
		&stats.Total, &stats.Active, &stats.Expired, &stats.ExpiringSoon)
	return stats, err
}

// GetMembershipStats aggregates subscription counts for the memberships view.
// PRE: none
// POST: Returns counts >= 0; ByType has one entry per type in use
func (s *SQLiteStore) GetMembershipStats(ctx context.Context, today time.Time) (MembershipStats, error) {
	stats := MembershipStats{ByType: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx,
		"SELECT membership_type, COUNT(*) FROM members WHERE status = 'Active' GROUP BY membership_type")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var membershipType string
		var count int
		if err := rows.Scan(&membershipType, &count); err != nil {
			return stats, err
		}
		stats.ByType[membershipType] = count
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	todayStr := storage.FormatDate(today)
	in7 := storage.FormatDate(today.AddDate(0, 0, 7))
	in30 := storage.FormatDate(today.AddDate(0, 0, 30))
	query := `SELECT
		COALESCE(SUM(CASE WHEN membership_expiry_date <= ? AND membership_expiry_date >= ? AND status = 'Active' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN membership_expiry_date <= ? AND membership_expiry_date >= ? AND status = 'Active' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN membership_expiry_date < ? AND status = 'Active' THEN 1 ELSE 0 END), 0)
		FROM members`
	err = s.db.QueryRowContext(ctx, query, in7, todayStr, in30, todayStr, todayStr).Scan(
		&stats.Expiring7Days, &stats.Expiring30Days, &stats.Expired)
	return stats, err
}

func (s *SQLiteStore) queryMembers(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("member query failed: %w", err)
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Compile-time check that SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
