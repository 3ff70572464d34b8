package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories"
	"meeting-service/internal/utils"
)

const maxImportRange = 366 * 24 * time.Hour

type UnavailabilityRepository interface {
	ListUnavailabilities(ctx context.Context, exec repositories.Executor, userID string, from, to *time.Time) ([]models.Unavailability, error)
	GetUnavailability(ctx context.Context, exec repositories.Executor, id string) (models.Unavailability, error)
	InsertUnavailability(ctx context.Context, exec repositories.Executor, u models.Unavailability) error
	DeleteUnavailability(ctx context.Context, exec repositories.Executor, id string) error
}

type UnavailabilityUsecase struct {
	executorFactory    repositories.ExecutorFactory
	transactionFactory repositories.TransactionFactory
	repository         UnavailabilityRepository
	busySource         BusyIntervalSource
}

func (usecase *UnavailabilityUsecase) ListUnavailabilities(ctx context.Context, actor models.Identity,
	userID string, from, to *time.Time,
) ([]models.Unavailability, error) {
	if !actor.CanManage(userID) {
		return nil, errors.Wrap(models.AuthorizationError, "blackouts are only visible to their owner")
	}
	return usecase.repository.ListUnavailabilities(ctx, usecase.executorFactory.NewExecutor(), userID, from, to)
}

func (usecase *UnavailabilityUsecase) CreateUnavailability(ctx context.Context, actor models.Identity,
	input models.Unavailability,
) (models.Unavailability, error) {
	if !actor.CanManage(input.UserID) {
		return models.Unavailability{}, errors.Wrapf(models.AuthorizationError,
			"user %s may not edit the calendar of %s", actor.UserID, input.UserID)
	}
	if err := input.Validate(); err != nil {
		return models.Unavailability{}, err
	}

	input.ID = uuid.NewString()
	input.Source = models.UnavailabilitySourceManual
	input.Reason = strings.TrimSpace(input.Reason)
	if err := usecase.repository.InsertUnavailability(ctx, usecase.executorFactory.NewExecutor(), input); err != nil {
		return models.Unavailability{}, err
	}
	return input, nil
}

func (usecase *UnavailabilityUsecase) DeleteUnavailability(ctx context.Context, actor models.Identity, id string) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Executor) error {
		blackout, err := usecase.repository.GetUnavailability(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(blackout.UserID) {
			return errors.Wrapf(models.AuthorizationError, "user %s may not delete this blackout", actor.UserID)
		}
		return usecase.repository.DeleteUnavailability(ctx, tx, id)
	})
}

// ImportBusyIntervals copies the busy time of the user's external calendar
// between from and to into google-sourced blackouts. Intervals already
// imported with the same range are skipped, so the import can be repeated.
func (usecase *UnavailabilityUsecase) ImportBusyIntervals(ctx context.Context, actor models.Identity,
	userID, credentials string, from, to time.Time,
) ([]models.Unavailability, error) {
	if usecase.busySource == nil {
		return nil, errors.Wrap(models.ValidationError, "calendar import is not configured")
	}
	if !actor.CanManage(userID) {
		return nil, errors.Wrapf(models.AuthorizationError, "user %s may not edit the calendar of %s", actor.UserID, userID)
	}
	if credentials == "" {
		return nil, errors.Wrap(models.ValidationError, "calendar credentials are required")
	}
	if !from.Before(to) || to.Sub(from) > maxImportRange {
		return nil, errors.Wrap(models.ValidationError, "import range must be increasing and at most one year long")
	}

	busy, err := usecase.busySource.BusyIntervals(ctx, credentials, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "reading external calendar")
	}

	imported, err := repositories.InTransaction(ctx, usecase.transactionFactory, func(tx repositories.Executor) ([]models.Unavailability, error) {
		existing, err := usecase.repository.ListUnavailabilities(ctx, tx, userID, &from, &to)
		if err != nil {
			return nil, err
		}

		out := make([]models.Unavailability, 0, len(busy))
	busyLoop:
		for _, interval := range busy {
			candidate := models.Unavailability{
				ID:            uuid.NewString(),
				UserID:        userID,
				StartDateTime: interval.Start,
				EndDateTime:   interval.End,
				Reason:        interval.Summary,
				Source:        models.UnavailabilitySourceGoogle,
			}
			if candidate.Validate() != nil {
				continue
			}
			for _, e := range append(existing, out...) {
				if e.Source == models.UnavailabilitySourceGoogle && e.SameRange(candidate) {
					continue busyLoop
				}
			}
			if err := usecase.repository.InsertUnavailability(ctx, tx, candidate); err != nil {
				return nil, err
			}
			out = append(out, candidate)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "imported external busy time",
		"user_id", userID,
		"fetched", len(busy),
		"imported", len(imported))
	return imported, nil
}
