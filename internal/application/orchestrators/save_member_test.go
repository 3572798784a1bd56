package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitclub/internal/domain/member"
)

// mockMemberStoreForSave implements MemberStoreForSave for testing.
type mockMemberStoreForSave struct {
	members map[string]member.Member
	saveErr error
}

func newMockMemberStore() *mockMemberStoreForSave {
	return &mockMemberStoreForSave{members: make(map[string]member.Member)}
}

// GetByID returns a seeded member by ID.
// PRE: id is non-empty
// POST: Returns the member or member.ErrNotFound
func (s *mockMemberStoreForSave) GetByID(_ context.Context, id string) (member.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	return m, nil
}

// Save persists the member in the map.
// PRE: member is valid
// POST: Member is stored keyed by ID
func (s *mockMemberStoreForSave) Save(_ context.Context, m member.Member) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.members[m.ID] = m
	return nil
}

// Delete removes the member.
// PRE: id is non-empty
// POST: Member removed or member.ErrNotFound
func (s *mockMemberStoreForSave) Delete(_ context.Context, id string) error {
	if _, ok := s.members[id]; !ok {
		return member.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

// EmailExists checks the seeded members for the email.
// PRE: email is non-empty
// POST: Returns true if a different row holds the email
func (s *mockMemberStoreForSave) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	for id, m := range s.members {
		if m.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func inputMember(email string) member.Member {
	return member.Member{
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          email,
		Phone:          "0211234567",
		MembershipType: "Monthly",
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecuteCreateMember_Valid(t *testing.T) {
	store := newMockMemberStore()
	id, errs, err := ExecuteCreateMember(context.Background(), SaveMemberDeps{MemberStore: store}, inputMember("jane@test.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs.Any() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}
	saved, ok := store.members[id]
	if !ok {
		t.Fatal("member not persisted")
	}
	if saved.Status != member.StatusActive {
		t.Errorf("status = %q, want Active default", saved.Status)
	}
}

func TestExecuteCreateMember_ValidationFailure(t *testing.T) {
	store := newMockMemberStore()
	m := inputMember("jane@test.com")
	m.FirstName = ""
	id, errs, err := ExecuteCreateMember(context.Background(), SaveMemberDeps{MemberStore: store}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errs.Any() {
		t.Fatal("expected validation errors")
	}
	if id != "" || len(store.members) != 0 {
		t.Error("invalid member was persisted")
	}
}

func TestExecuteCreateMember_DuplicateEmail(t *testing.T) {
	store := newMockMemberStore()
	store.members["existing"] = inputMember("jane@test.com")

	_, errs, err := ExecuteCreateMember(context.Background(), SaveMemberDeps{MemberStore: store}, inputMember("jane@test.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs["email"] != "Email already exists" {
		t.Errorf("errs = %v, want duplicate email message", errs)
	}
}

func TestExecuteCreateMember_DuplicateRace(t *testing.T) {
	store := newMockMemberStore()
	store.saveErr = member.ErrDuplicateEmail

	_, errs, err := ExecuteCreateMember(context.Background(), SaveMemberDeps{MemberStore: store}, inputMember("jane@test.com"))
	if err != nil {
		t.Fatalf("constraint violation should map to a field error, got %v", err)
	}
	if errs["email"] != "Email already exists" {
		t.Errorf("errs = %v, want duplicate email message", errs)
	}
}

func TestExecuteUpdateMember_PreservesCreatedAt(t *testing.T) {
	store := newMockMemberStore()
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	existing := inputMember("jane@test.com")
	existing.ID = "m1"
	existing.CreatedAt = created
	store.members["m1"] = existing

	updated := inputMember("jane.new@test.com")
	updated.ID = "m1"
	updated.CreatedAt = time.Now()

	errs, err := ExecuteUpdateMember(context.Background(), SaveMemberDeps{MemberStore: store}, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs.Any() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if got := store.members["m1"].CreatedAt; !got.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", got, created)
	}
	if store.members["m1"].Email != "jane.new@test.com" {
		t.Error("email change not persisted")
	}
}

func TestExecuteUpdateMember_OwnEmailAllowed(t *testing.T) {
	store := newMockMemberStore()
	existing := inputMember("jane@test.com")
	existing.ID = "m1"
	store.members["m1"] = existing

	update := inputMember("jane@test.com")
	update.ID = "m1"
	errs, err := ExecuteUpdateMember(context.Background(), SaveMemberDeps{MemberStore: store}, update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs.Any() {
		t.Errorf("keeping own email flagged as duplicate: %v", errs)
	}
}

func TestExecuteUpdateMember_NotFound(t *testing.T) {
	store := newMockMemberStore()
	m := inputMember("jane@test.com")
	m.ID = "missing"
	_, err := ExecuteUpdateMember(context.Background(), SaveMemberDeps{MemberStore: store}, m)
	if !errors.Is(err, member.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestExecuteDeleteMember(t *testing.T) {
	store := newMockMemberStore()
	m := inputMember("jane@test.com")
	m.ID = "m1"
	store.members["m1"] = m

	if err := ExecuteDeleteMember(context.Background(), SaveMemberDeps{MemberStore: store}, "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.members) != 0 {
		t.Error("member not removed")
	}

	if err := ExecuteDeleteMember(context.Background(), SaveMemberDeps{MemberStore: store}, "m1"); !errors.Is(err, member.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
