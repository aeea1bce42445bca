package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	query string
	args  []interface{}
}

type fakeExecutor struct {
	execs []execCall
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return fakeResult{}, nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

func TestDecrementPositionsAfter_ShiftsInTwoPasses(t *testing.T) {
	executor := &fakeExecutor{}
	repo := NewRepository(executor)

	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	err := repo.DecrementPositionsAfter(context.Background(), 1, date, "10:00", 2)
	require.NoError(t, err)
	require.Len(t, executor.execs, 2)

	// Первый проход уводит сдвигаемые строки в свободный диапазон,
	// второй опускает их на единицу ниже исходных позиций
	lift, drop := executor.execs[0], executor.execs[1]

	assert.True(t, strings.Contains(lift.query, "position + $"), "lift query: %s", lift.query)
	assert.Contains(t, lift.args, positionShiftOffset)
	assert.Contains(t, lift.args, 2)

	assert.True(t, strings.Contains(drop.query, "position - $"), "drop query: %s", drop.query)
	assert.Contains(t, drop.args, positionShiftOffset+1)
	assert.Contains(t, drop.args, positionShiftOffset)
}

func TestTranslateUniqueViolation(t *testing.T) {
	assert.ErrorIs(t,
		translateUniqueViolation(&pq.Error{Code: "23505", Constraint: "uq_waitlist_position"}),
		ErrPositionTaken)

	assert.ErrorIs(t,
		translateUniqueViolation(&pq.Error{Code: "23505", Constraint: "uq_waitlist_customer_slot"}),
		ErrDuplicateWaiting)

	// Ошибка драйвера, обёрнутая репозиторием, остаётся различимой
	wrapped := fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505", Constraint: "uq_waitlist_position"})
	assert.ErrorIs(t, translateUniqueViolation(wrapped), ErrPositionTaken)

	// Прочие нарушения уникальности не маскируются под сентинели
	other := translateUniqueViolation(&pq.Error{Code: "23505", Constraint: "some_other_index"})
	assert.ErrorIs(t, other, ErrExecQuery)

	assert.Nil(t, translateUniqueViolation(&pq.Error{Code: "40001"}))
	assert.Nil(t, translateUniqueViolation(errors.New("plain error")))
}
