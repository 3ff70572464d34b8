package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"meeting-service/internal/repositories"
)

type TransactionFactory struct {
	mock.Mock
	TxMock *Transaction
}

func (t *TransactionFactory) Transaction(ctx context.Context, fn func(tx repositories.Executor) error) error {
	args := t.Called(ctx, fn)
	err := fn(t.TxMock)
	if err != nil {
		return err
	}
	return args.Error(0)
}

type ExecutorFactory struct {
	ExecMock *Transaction
}

func (e *ExecutorFactory) NewExecutor() repositories.Executor {
	return e.ExecMock
}
