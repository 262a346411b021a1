package query

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const defaultOperator = "eq"

type predicate func(column string, value interface{}) sq.Sqlizer

var operators = map[string]predicate{
	"eq":  func(c string, v interface{}) sq.Sqlizer { return sq.Eq{c: v} },
	"neq": func(c string, v interface{}) sq.Sqlizer { return sq.NotEq{c: v} },

	"gt":          func(c string, v interface{}) sq.Sqlizer { return sq.Gt{c: v} },
	"greaterThan": func(c string, v interface{}) sq.Sqlizer { return sq.Gt{c: v} },
	"lt":          func(c string, v interface{}) sq.Sqlizer { return sq.Lt{c: v} },
	"lessThan":    func(c string, v interface{}) sq.Sqlizer { return sq.Lt{c: v} },

	"gte":                 func(c string, v interface{}) sq.Sqlizer { return sq.GtOrEq{c: v} },
	"greaterThanOrEquals": func(c string, v interface{}) sq.Sqlizer { return sq.GtOrEq{c: v} },
	"lte":                 func(c string, v interface{}) sq.Sqlizer { return sq.LtOrEq{c: v} },
	"lessThanOrEquals":    func(c string, v interface{}) sq.Sqlizer { return sq.LtOrEq{c: v} },

	"contains": func(c string, v interface{}) sq.Sqlizer {
		return sq.ILike{c: "%" + escapeLike(v) + "%"}
	},
	"doesnotcontain": func(c string, v interface{}) sq.Sqlizer {
		return sq.NotILike{c: "%" + escapeLike(v) + "%"}
	},
	"startswith": func(c string, v interface{}) sq.Sqlizer {
		return sq.ILike{c: escapeLike(v) + "%"}
	},
	"endswith": func(c string, v interface{}) sq.Sqlizer {
		return sq.ILike{c: "%" + escapeLike(v)}
	},

	"isnull":    func(c string, _ interface{}) sq.Sqlizer { return sq.Eq{c: nil} },
	"isnotnull": func(c string, _ interface{}) sq.Sqlizer { return sq.NotEq{c: nil} },
}

// listOperators accept an array value, rendered as IN / NOT IN.
var listOperators = map[string]bool{"eq": true, "neq": true}

// comparisonOperators need a non-null scalar.
var comparisonOperators = map[string]bool{
	"gt": true, "greaterThan": true, "lt": true, "lessThan": true,
	"gte": true, "greaterThanOrEquals": true, "lte": true, "lessThanOrEquals": true,
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return true
	}
	return false
}

// checkValue rejects values whose shape op cannot bind.
func checkValue(op string, v interface{}) error {
	if list, ok := v.([]interface{}); ok {
		if !listOperators[op] {
			return fmt.Errorf("%w: operator %q does not take a list", ErrInvalidQuery, op)
		}
		for _, item := range list {
			if item == nil || !isScalar(item) {
				return fmt.Errorf("%w: list for operator %q must hold scalars", ErrInvalidQuery, op)
			}
		}
		return nil
	}
	if !isScalar(v) {
		return fmt.Errorf("%w: unsupported value for operator %q", ErrInvalidQuery, op)
	}
	if v == nil && comparisonOperators[op] {
		return fmt.Errorf("%w: operator %q needs a value", ErrInvalidQuery, op)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike turns v into a literal LIKE pattern fragment.
func escapeLike(v interface{}) string {
	if v == nil {
		return ""
	}
	return likeEscaper.Replace(fmt.Sprint(v))
}
