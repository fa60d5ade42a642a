package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetCode(t *testing.T) {
	require.Equal(t, Code(""), GetCode(nil))
	require.Equal(t, CodeInternal, GetCode(errors.New("boom")))
	require.Equal(t, CodeNotFound, GetCode(fmt.Errorf("wrapped: %w", NotFound("employee not found"))))
}

func TestFieldErrors(t *testing.T) {
	err := fmt.Errorf("create: %w", Field("first_name", "The first name field is required."))

	require.Equal(t, CodeValidation, GetCode(err))
	require.Equal(t, map[string]string{"first_name": "The first name field is required."}, FieldErrors(err))
	require.Nil(t, FieldErrors(errors.New("plain")))
}

func TestMapDatabaseError(t *testing.T) {
	fk := MapDatabaseError(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"}))
	require.Equal(t, CodeConflict, GetCode(fk))

	unique := MapDatabaseError(&pgconn.PgError{Code: "23505"})
	require.Equal(t, CodeConflict, GetCode(unique))

	other := errors.New("connection reset")
	require.Same(t, other, MapDatabaseError(other))
}

func TestMapTranslatedDatabaseError(t *testing.T) {
	fk := MapDatabaseError(fmt.Errorf("delete country: %w", gorm.ErrForeignKeyViolated))
	require.Equal(t, CodeConflict, GetCode(fk))
	require.Equal(t, "the record is still referenced by other records", fk.Error())

	dup := MapDatabaseError(gorm.ErrDuplicatedKey)
	require.Equal(t, CodeConflict, GetCode(dup))

	require.ErrorIs(t, MapDatabaseError(gorm.ErrRecordNotFound), gorm.ErrRecordNotFound)
}
