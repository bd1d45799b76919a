package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors to domain errors. Unknown errors are wrapped with op.
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}

// paginate applies offset/limit for a normalized filter
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	filter = filter.Normalize()
	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// likePattern builds a case-insensitive LIKE pattern for LOWER(column) comparisons
func likePattern(search string) string {
	s := strings.ToLower(strings.TrimSpace(search))
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return "%" + s + "%"
}

// reusable returns a query that can be executed more than once, e.g. Count then Find
func reusable(query *gorm.DB) *gorm.DB {
	return query.Session(&gorm.Session{})
}
