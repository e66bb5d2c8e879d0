package store

import (
	"context"
	"errors"
)

// ErrMultipleRows is returned by Single when a query expected to resolve to
// at most one row matched several. Not-found stays a soft condition: Single
// reports (nil, nil) so callers branch on the data, not on an error.
var ErrMultipleRows = errors.New("query matched multiple rows")

// SelectQuery accumulates equality filters and an optional ordering.
type SelectQuery struct {
	table   *Table
	filters []filter
	order   *ordering
}

// Eq adds an equality filter on one column.
func (q *SelectQuery) Eq(column string, value any) *SelectQuery {
	q.filters = append(q.filters, filter{column: column, value: value})
	return q
}

// Order sorts the result by one column before it is returned.
func (q *SelectQuery) Order(column string, ascending bool) *SelectQuery {
	q.order = &ordering{column: column, ascending: ascending}
	return q
}

// All returns every matching row, in insertion order unless Order was set.
func (q *SelectQuery) All(ctx context.Context) ([]Row, error) {
	var rows []Row
	err := q.table.client.do(ctx, func() {
		rows = q.table.client.store.selectRows(q.table.name, q.filters, q.order)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Single returns the one matching row, nil when nothing matched, or
// ErrMultipleRows when the filter was not selective enough.
func (q *SelectQuery) Single(ctx context.Context) (Row, error) {
	rows, err := q.All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, ErrMultipleRows
	}
}

// UpdateQuery applies a shallow merge onto every row matching its filters,
// stamping updated_at. Matching zero rows is not an error.
type UpdateQuery struct {
	table   *Table
	patch   Row
	filters []filter
}

func (q *UpdateQuery) Eq(column string, value any) *UpdateQuery {
	q.filters = append(q.filters, filter{column: column, value: value})
	return q
}

func (q *UpdateQuery) Exec(ctx context.Context) error {
	return q.table.client.do(ctx, func() {
		updated := q.table.client.store.updateRows(q.table.name, q.patch, q.filters, q.table.client.now().UTC())
		q.table.client.logger.WithField("table", q.table.name).WithField("rows", updated).Debug("store update")
	})
}

// DeleteQuery removes every row matching its filters. Matching zero rows is
// not an error.
type DeleteQuery struct {
	table   *Table
	filters []filter
}

func (q *DeleteQuery) Eq(column string, value any) *DeleteQuery {
	q.filters = append(q.filters, filter{column: column, value: value})
	return q
}

func (q *DeleteQuery) Exec(ctx context.Context) error {
	return q.table.client.do(ctx, func() {
		deleted := q.table.client.store.deleteRows(q.table.name, q.filters)
		q.table.client.logger.WithField("table", q.table.name).WithField("rows", deleted).Debug("store delete")
	})
}
