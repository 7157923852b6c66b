package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelres/infras/otel"
	"hotelres/infras/postgres"
	"hotelres/internal/domains/receipt/model"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/logger"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

var ErrDuplicateReceipt = errors.New("receipt already archived")

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Receipt interface {
	Insert(ctx context.Context, receipt model.Receipt) error
	GetByTransactionID(ctx context.Context, transactionID string) (model.Receipt, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Receipt {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func insertQuery(receipt model.Receipt) (string, []any, error) {
	query, args, err := psql.Insert(model.TableName).
		Columns(model.Columns()...).
		Values(receipt.Values()...).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build insert query (%s): %w", model.EntityName, err)
	}

	return query, args, nil
}

func getByTransactionIDQuery(transactionID string) (string, []any, error) {
	query, args, err := psql.Select(model.Columns()...).
		From(model.TableName).
		Where(squirrel.Eq{model.FieldTransactionID: transactionID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build select query (%s): %w", model.EntityName, err)
	}

	return query, args, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, receipt model.Receipt) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query, args, err := insertQuery(receipt)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = r.db.Write.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, ErrDuplicateReceipt)
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (r *repositoryImpl) GetByTransactionID(ctx context.Context, transactionID string) (model.Receipt, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetByTransactionID", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	var receipt model.Receipt

	query, args, err := getByTransactionIDQuery(transactionID)
	if err != nil {
		scope.TraceError(err)

		return receipt, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.GetContext(ctx, &receipt, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return receipt, failure.NotFound("receipt not found")
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return receipt, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return receipt, nil
}
