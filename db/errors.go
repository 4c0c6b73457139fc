package db

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsDuplicateErr нарушение уникального индекса, для postgres и sqlite
func IsDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "(SQLSTATE 23505)") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsImmutablePairErr попытка сменить кандидата, вакансию или компанию предложения
func IsImmutablePairErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), ProposalPairImmutable)
}
