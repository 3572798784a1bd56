package orchestrators

import (
	"context"
	"log/slog"

	"fitclub/internal/domain/member"
	"fitclub/internal/domain/validate"

	"github.com/google/uuid"
)

// MemberStoreForSave defines the store interface needed by the member writers.
type MemberStoreForSave interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
}

// SaveMemberDeps holds dependencies for CreateMember and UpdateMember.
type SaveMemberDeps struct {
	MemberStore MemberStoreForSave
}

// ExecuteCreateMember validates and persists a new member.
// Email uniqueness is checked against the members table before the insert;
// a concurrent insert can still race, which the store surfaces as
// member.ErrDuplicateEmail from the unique constraint.
// PRE: m is populated from form input
// POST: Member persisted with a generated ID and Active status default
func ExecuteCreateMember(ctx context.Context, deps SaveMemberDeps, m member.Member) (string, validate.Errors, error) {
	if m.Status == "" {
		m.Status = member.StatusActive
	}
	if errs := m.Validate(); errs.Any() {
		return "", errs, nil
	}

	exists, err := deps.MemberStore.EmailExists(ctx, m.Email, "")
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", validate.Errors{"email": "Email already exists"}, nil
	}

	m.ID = uuid.New().String()
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		if err == member.ErrDuplicateEmail {
			return "", validate.Errors{"email": "Email already exists"}, nil
		}
		return "", nil, err
	}

	slog.Info("member_created", "member_id", m.ID, "membership_type", m.MembershipType)
	return m.ID, nil, nil
}

// ExecuteUpdateMember validates and persists changes to an existing member.
// The email uniqueness check excludes the member's own row.
// PRE: m.ID refers to an existing member
// POST: Member row updated
func ExecuteUpdateMember(ctx context.Context, deps SaveMemberDeps, m member.Member) (validate.Errors, error) {
	existing, err := deps.MemberStore.GetByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if errs := m.Validate(); errs.Any() {
		return errs, nil
	}

	exists, err := deps.MemberStore.EmailExists(ctx, m.Email, m.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return validate.Errors{"email": "Email already exists"}, nil
	}

	m.CreatedAt = existing.CreatedAt
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		if err == member.ErrDuplicateEmail {
			return validate.Errors{"email": "Email already exists"}, nil
		}
		return nil, err
	}

	slog.Info("member_updated", "member_id", m.ID)
	return nil, nil
}

// ExecuteDeleteMember removes a member. Workout plans referencing the member
// are removed by the schema's cascade rule.
// PRE: id is non-empty
// POST: Member row and dependent plans removed
func ExecuteDeleteMember(ctx context.Context, deps SaveMemberDeps, id string) error {
	if err := deps.MemberStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("member_deleted", "member_id", id)
	return nil
}
