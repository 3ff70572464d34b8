package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"meeting-service/internal/models"
	"meeting-service/internal/repositories/dbmodels"
)

// GetUser reads the user directory. The directory itself is owned by the
// account service; this service only reads ids and roles from it.
func (repo *PgRepository) GetUser(ctx context.Context, exec Executor, userID string) (models.User, error) {
	query := NewQueryBuilder().
		Select("id", "role").
		From(dbmodels.TABLE_USERS).
		Where(squirrel.Eq{"id": userID})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptUser, models.ErrUnknownUser)
}
