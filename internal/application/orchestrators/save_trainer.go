package orchestrators

import (
	"context"
	"log/slog"

	"fitclub/internal/domain/trainer"
	"fitclub/internal/domain/validate"

	"github.com/google/uuid"
)

// TrainerStoreForSave defines the store interface needed by the trainer writers.
type TrainerStoreForSave interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
	Save(ctx context.Context, t trainer.Trainer) error
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
}

// SaveTrainerDeps holds dependencies for the trainer writers.
type SaveTrainerDeps struct {
	TrainerStore TrainerStoreForSave
}

// ExecuteCreateTrainer validates and persists a new trainer.
// Email uniqueness is scoped to the trainers table; a member with the same
// address does not block trainer creation.
// PRE: t is populated from form input
// POST: Trainer persisted with a generated ID and Active status default
func ExecuteCreateTrainer(ctx context.Context, deps SaveTrainerDeps, t trainer.Trainer) (string, validate.Errors, error) {
	if t.Status == "" {
		t.Status = trainer.StatusActive
	}
	if errs := t.Validate(); errs.Any() {
		return "", errs, nil
	}

	exists, err := deps.TrainerStore.EmailExists(ctx, t.Email, "")
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", validate.Errors{"email": "Email already exists"}, nil
	}

	t.ID = uuid.New().String()
	if err := deps.TrainerStore.Save(ctx, t); err != nil {
		if err == trainer.ErrDuplicateEmail {
			return "", validate.Errors{"email": "Email already exists"}, nil
		}
		return "", nil, err
	}

	slog.Info("trainer_created", "trainer_id", t.ID, "specialization", t.Specialization)
	return t.ID, nil, nil
}

// ExecuteUpdateTrainer validates and persists changes to an existing trainer.
// PRE: t.ID refers to an existing trainer
// POST: Trainer row updated
func ExecuteUpdateTrainer(ctx context.Context, deps SaveTrainerDeps, t trainer.Trainer) (validate.Errors, error) {
	existing, err := deps.TrainerStore.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if errs := t.Validate(); errs.Any() {
		return errs, nil
	}

	exists, err := deps.TrainerStore.EmailExists(ctx, t.Email, t.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return validate.Errors{"email": "Email already exists"}, nil
	}

	t.CreatedAt = existing.CreatedAt
	if err := deps.TrainerStore.Save(ctx, t); err != nil {
		if err == trainer.ErrDuplicateEmail {
			return validate.Errors{"email": "Email already exists"}, nil
		}
		return nil, err
	}

	slog.Info("trainer_updated", "trainer_id", t.ID)
	return nil, nil
}

// ExecuteDeleteTrainer removes a trainer. Plans assigned to the trainer keep
// running with the assignment nulled by the schema rule.
// PRE: id is non-empty
// POST: Trainer row removed
func ExecuteDeleteTrainer(ctx context.Context, deps SaveTrainerDeps, id string) error {
	if err := deps.TrainerStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("trainer_deleted", "trainer_id", id)
	return nil
}
