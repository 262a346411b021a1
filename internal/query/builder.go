// Package query turns grid state into parameterized SQL for paged listings.
package query

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ErrInvalidQuery is returned for any grid request that references an unknown
// field, operator, sort direction or logic.
var ErrInvalidQuery = errors.New("invalid query")

const maxDepth = 8

// Query is a compiled grid request.
type Query struct {
	Where   sq.Sqlizer
	OrderBy []string
	Limit   uint64
	Offset  uint64
}

// Select renders the paged row query.
func (q Query) Select(table string, columns ...string) sq.SelectBuilder {
	b := sq.Select(columns...).From(table)
	if q.Where != nil {
		b = b.Where(q.Where)
	}
	return b.OrderBy(q.OrderBy...).Limit(q.Limit).Offset(q.Offset)
}

// Count renders the total-match query with the same filters and no paging.
func (q Query) Count(table string) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").From(table)
	if q.Where != nil {
		b = b.Where(q.Where)
	}
	return b
}

// Builder compiles GridRequests against a fixed column whitelist.
type Builder struct {
	columns       map[string]string
	searchColumns []string
	defaultSort   string
	defaultLimit  int
	maxLimit      int
}

// NewBuilder returns a builder. columns maps client field names to table columns;
// searchColumns are ORed together for free-text search.
func NewBuilder(columns map[string]string, searchColumns []string, defaultSort string, defaultLimit, maxLimit int) *Builder {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Builder{
		columns:       columns,
		searchColumns: searchColumns,
		defaultSort:   defaultSort,
		defaultLimit:  defaultLimit,
		maxLimit:      maxLimit,
	}
}

// Build validates req against the column whitelist and turns it into a
// Query. Any unknown field, operator, direction, logic or value shape is
// reported as ErrInvalidQuery.
func (b *Builder) Build(req GridRequest) (Query, error) {
	var q Query

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = b.defaultLimit
	}
	if limit > b.maxLimit {
		limit = b.maxLimit
	}
	q.Limit = uint64(limit)
	q.Offset = uint64(page-1) * uint64(limit)

	order, err := b.orderBy(req.Sorts)
	if err != nil {
		return Query{}, err
	}
	q.OrderBy = order

	var where sq.And
	for _, f := range req.Filters {
		cond, err := b.filter(f, 1)
		if err != nil {
			return Query{}, err
		}
		if cond != nil {
			where = append(where, cond)
		}
	}
	if s := strings.TrimSpace(req.SearchQuery); s != "" && len(b.searchColumns) > 0 {
		var search sq.Or
		for _, col := range b.searchColumns {
			search = append(search, sq.ILike{col: "%" + escapeLike(s) + "%"})
		}
		where = append(where, search)
	}
	if len(where) > 0 {
		q.Where = where
	}
	return q, nil
}

func (b *Builder) column(field string) (string, error) {
	col, ok := b.columns[field]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidQuery, field)
	}
	return col, nil
}

// orderBy maps sorts to ORDER BY terms. An entry without a direction falls
// back to the default sort, which is only emitted once.
func (b *Builder) orderBy(sorts []Sort) ([]string, error) {
	if len(sorts) == 0 {
		return []string{b.defaultSort}, nil
	}

	terms := make([]string, 0, len(sorts))
	seen := make(map[string]bool, len(sorts))
	for _, s := range sorts {
		term := b.defaultSort
		if s.Dir != "" {
			dir := strings.ToUpper(s.Dir)
			if dir != "ASC" && dir != "DESC" {
				return nil, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidQuery, s.Dir)
			}
			col, err := b.column(s.Field)
			if err != nil {
				return nil, err
			}
			term = col + " " + dir
		}
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}
	return terms, nil
}

func (b *Builder) filter(f Filter, depth int) (sq.Sqlizer, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: filters nested deeper than %d", ErrInvalidQuery, maxDepth)
	}

	if f.IsGroup() {
		logic := strings.ToLower(f.Logic)
		if logic != "" && logic != "and" && logic != "or" {
			return nil, fmt.Errorf("%w: unknown logic %q", ErrInvalidQuery, f.Logic)
		}
		var parts []sq.Sqlizer
		for _, child := range f.Filters {
			cond, err := b.filter(child, depth+1)
			if err != nil {
				return nil, err
			}
			if cond != nil {
				parts = append(parts, cond)
			}
		}
		if len(parts) == 0 {
			return nil, nil
		}
		if logic == "or" {
			return sq.Or(parts), nil
		}
		return sq.And(parts), nil
	}

	col, err := b.column(f.Field)
	if err != nil {
		return nil, err
	}
	op := f.Operator
	if op == "" {
		op = defaultOperator
	}
	pred, ok := operators[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, f.Operator)
	}
	if err := checkValue(op, f.Value); err != nil {
		return nil, err
	}
	return pred(col, f.Value), nil
}
