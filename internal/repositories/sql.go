package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"meeting-service/internal/models"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ExecBuilder runs a statement and returns the number of affected rows.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}
	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, markInvalidInput(errors.Wrap(err, fmt.Sprintf("error executing sql query: %s", query)))
	}
	return tag.RowsAffected(), nil
}

// SqlToListOfModels executes the query and returns a list of models using the provided adapter
func SqlToListOfModels[DBModel, Model any](ctx context.Context, exec Executor,
	query squirrel.Sqlizer, adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, markInvalidInput(errors.Wrap(err, "error executing sql query"))
	}

	dbModels, err := pgx.CollectRows(rows, pgx.RowToStructByName[DBModel])
	if err != nil {
		return nil, markInvalidInput(errors.Wrap(err, fmt.Sprintf("error scanning rows to %T", *new(DBModel))))
	}

	out := make([]Model, 0, len(dbModels))
	for _, dbModel := range dbModels {
		m, err := adapter(dbModel)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// SqlToModel executes the query and returns one model, or notFound (which
// should wrap models.NotFoundError) when no row matches or a key is malformed.
func SqlToModel[DBModel, Model any](ctx context.Context, exec Executor,
	query squirrel.Sqlizer, adapter func(dbModel DBModel) (Model, error), notFound error,
) (Model, error) {
	if notFound == nil {
		notFound = models.NotFoundError
	}
	list, err := SqlToListOfModels(ctx, exec, query, adapter)
	if IsInvalidTextRepresentationError(err) {
		return *new(Model), notFound
	}
	if err != nil {
		return *new(Model), err
	}
	switch len(list) {
	case 0:
		return *new(Model), notFound
	case 1:
		return list[0], nil
	default:
		return *new(Model), errors.Newf("expected one row, got %d", len(list))
	}
}

// PgRepository implements every repository interface of the usecases on top
// of postgres. It holds no state: the executor is passed to each call.
type PgRepository struct{}

func NewPgRepository() *PgRepository {
	return &PgRepository{}
}
