package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
	"meeting-service/internal/utils"
)

type AvailabilityRepository interface {
	ListAvailabilityWindows(ctx context.Context, exec repositories.Executor, userID string) ([]models.AvailabilityWindow, error)
	GetAvailabilityWindow(ctx context.Context, exec repositories.Executor, id string) (models.AvailabilityWindow, error)
	InsertAvailabilityWindow(ctx context.Context, exec repositories.Executor, w models.AvailabilityWindow) error
	UpdateAvailabilityWindow(ctx context.Context, exec repositories.Executor, w models.AvailabilityWindow) error
	DeleteAvailabilityWindows(ctx context.Context, exec repositories.Executor, ids []string) error
	LockUserCalendars(ctx context.Context, exec repositories.Executor, userIDs ...string) error
}

type AvailabilityUsecase struct {
	executorFactory    repositories.ExecutorFactory
	transactionFactory repositories.TransactionFactory
	repository         AvailabilityRepository
	policy             models.AvailabilityPolicy
}

// GetAvailability is open to any authenticated caller.
func (usecase *AvailabilityUsecase) GetAvailability(ctx context.Context, userID string) ([]models.AvailabilityWindow, error) {
	windows, err := usecase.repository.ListAvailabilityWindows(ctx, usecase.executorFactory.NewExecutor(), userID)
	if err != nil {
		return nil, err
	}
	models.SortAvailability(windows)
	return windows, nil
}

// ReplaceAvailability swaps the whole availability of userID for windows. The
// batch is validated before anything is written; an invalid batch leaves the
// stored configuration untouched.
func (usecase *AvailabilityUsecase) ReplaceAvailability(ctx context.Context, actor models.Identity,
	userID string, windows []models.AvailabilityWindow,
) ([]models.AvailabilityWindow, error) {
	if !actor.CanManage(userID) {
		return nil, errors.Wrapf(models.AuthorizationError, "user %s may not edit the availability of %s", actor.UserID, userID)
	}

	desired, err := models.ValidateAvailabilityBatch(windows, usecase.policy)
	if err != nil {
		return nil, err
	}
	for i := range desired {
		desired[i].UserID = userID
	}

	result, err := repositories.InTransaction(ctx, usecase.transactionFactory, func(
		tx repositories.Executor,
	) ([]models.AvailabilityWindow, error) {
		if err := usecase.repository.LockUserCalendars(ctx, tx, userID); err != nil {
			return nil, err
		}
		existing, err := usecase.repository.ListAvailabilityWindows(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		diff := models.DiffAvailability(existing, desired, usecase.policy)
		if diff.Empty() {
			return existing, nil
		}
		if err := usecase.repository.DeleteAvailabilityWindows(ctx, tx, diff.ToDelete); err != nil {
			return nil, err
		}
		for _, w := range diff.ToUpdate {
			if err := usecase.repository.UpdateAvailabilityWindow(ctx, tx, w); err != nil {
				return nil, err
			}
		}
		for _, w := range diff.ToInsert {
			w.ID = uuid.NewString()
			if err := usecase.repository.InsertAvailabilityWindow(ctx, tx, w); err != nil {
				return nil, err
			}
		}

		utils.LoggerFromContext(ctx).InfoContext(ctx, "availability replaced",
			"user_id", userID,
			"inserted", len(diff.ToInsert),
			"updated", len(diff.ToUpdate),
			"deleted", len(diff.ToDelete))
		return usecase.repository.ListAvailabilityWindows(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}
	models.SortAvailability(result)
	return result, nil
}

func (usecase *AvailabilityUsecase) DeleteAvailabilityWindow(ctx context.Context, actor models.Identity, id string) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Executor) error {
		window, err := usecase.repository.GetAvailabilityWindow(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(window.UserID) {
			return errors.Wrapf(models.AuthorizationError, "user %s may not delete this window", actor.UserID)
		}
		if err := usecase.repository.LockUserCalendars(ctx, tx, window.UserID); err != nil {
			return err
		}
		return usecase.repository.DeleteAvailabilityWindows(ctx, tx, []string{id})
	})
}
