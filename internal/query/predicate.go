package query

import (
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Row is anything a predicate can be evaluated against in memory. Field
// returns the value for a column key, or nil when the row has no such field.
// Values are expected to be string, int, int64, float64, bool or time.Time.
type Row interface {
	Field(key string) any
}

// Predicate is a boolean filter condition. The zero value matches every row.
type Predicate struct {
	expr  exp.Expression
	match func(Row) bool
}

// MatchAll is the unconditional predicate.
var MatchAll = Predicate{}

// MatchesAll reports whether p is the unconditional predicate.
func (p Predicate) MatchesAll() bool {
	return p.expr == nil
}

// Expression returns the goqu expression, or nil for MatchAll.
func (p Predicate) Expression() exp.Expression {
	return p.expr
}

// Matches evaluates p against a row already in memory.
func (p Predicate) Matches(r Row) bool {
	if p.match == nil {
		return true
	}
	return p.match(r)
}

// Apply adds p as a WHERE condition to ds. MatchAll leaves ds untouched.
func (p Predicate) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if p.MatchesAll() {
		return ds
	}
	return ds.Where(p.expr)
}

// Eq matches rows whose column equals value.
func Eq(col Column, value any) Predicate {
	col = mustValid(col)
	return Predicate{
		expr: col.Ident().Eq(value),
		match: func(r Row) bool {
			return compare(r.Field(col.key), value) == 0
		},
	}
}

// Gte matches rows whose column is greater than or equal to value.
func Gte(col Column, value any) Predicate {
	col = mustValid(col)
	return Predicate{
		expr: col.Ident().Gte(value),
		match: func(r Row) bool {
			v := r.Field(col.key)
			return v != nil && compare(v, value) >= 0
		},
	}
}

// Lte matches rows whose column is less than or equal to value.
func Lte(col Column, value any) Predicate {
	col = mustValid(col)
	return Predicate{
		expr: col.Ident().Lte(value),
		match: func(r Row) bool {
			v := r.Field(col.key)
			return v != nil && compare(v, value) <= 0
		},
	}
}

// In matches rows whose column equals one of ids. An empty id set matches
// nothing.
func In(col Column, ids []int64) Predicate {
	col = mustValid(col)
	if len(ids) == 0 {
		return Predicate{
			expr:  goqu.L("1 = 0"),
			match: func(Row) bool { return false },
		}
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Predicate{
		expr: col.Ident().In(ids),
		match: func(r Row) bool {
			v, ok := normalize(r.Field(col.key)).(int64)
			if !ok {
				return false
			}
			_, hit := set[v]
			return hit
		},
	}
}

// ContainsFold matches rows whose column contains term, ignoring case.
// LIKE wildcards in term are escaped so they match literally.
func ContainsFold(col Column, term string) Predicate {
	col = mustValid(col)
	needle := strings.ToLower(term)
	return Predicate{
		expr: col.Ident().ILike("%" + escapeLike(term) + "%"),
		match: func(r Row) bool {
			s, ok := r.Field(col.key).(string)
			return ok && strings.Contains(strings.ToLower(s), needle)
		},
	}
}

// And combines predicates with AND. MatchAll operands are dropped.
func And(preds ...Predicate) Predicate {
	parts := nonTrivial(preds)
	switch len(parts) {
	case 0:
		return MatchAll
	case 1:
		return parts[0]
	}
	exprs := make([]exp.Expression, len(parts))
	for i, p := range parts {
		exprs[i] = p.expr
	}
	return Predicate{
		expr: goqu.And(exprs...),
		match: func(r Row) bool {
			for _, p := range parts {
				if !p.Matches(r) {
					return false
				}
			}
			return true
		},
	}
}

// Or combines predicates with OR. Any MatchAll operand makes the whole
// predicate MatchAll.
func Or(preds ...Predicate) Predicate {
	if len(preds) == 0 {
		return MatchAll
	}
	for _, p := range preds {
		if p.MatchesAll() {
			return MatchAll
		}
	}
	if len(preds) == 1 {
		return preds[0]
	}
	parts := append([]Predicate(nil), preds...)
	exprs := make([]exp.Expression, len(parts))
	for i, p := range parts {
		exprs[i] = p.expr
	}
	return Predicate{
		expr: goqu.Or(exprs...),
		match: func(r Row) bool {
			for _, p := range parts {
				if p.Matches(r) {
					return true
				}
			}
			return false
		},
	}
}

// Filter returns the rows matching p, preserving order.
func Filter[R Row](rows []R, p Predicate) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func nonTrivial(preds []Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if !p.MatchesAll() {
			out = append(out, p)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// compare orders two field values. nil sorts before everything, and values
// of unrelated kinds compare by their kind rank so ordering stays total.
func compare(a, b any) int {
	a, b = normalize(a), normalize(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return cmpOrdered(av, bv)
		case float64:
			return cmpOrdered(float64(av), bv)
		}
	case float64:
		switch bv := b.(type) {
		case float64:
			return cmpOrdered(av, bv)
		case int64:
			return cmpOrdered(av, float64(bv))
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return cmpOrdered(kindRank(a), kindRank(b))
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case interface{ String() string }:
		if _, isTime := v.(time.Time); isTime {
			return v
		}
		return x.String()
	}
	return v
}

func kindRank(v any) int {
	switch v.(type) {
	case bool:
		return 1
	case int64, float64:
		return 2
	case string:
		return 3
	case time.Time:
		return 4
	}
	return 5
}

type ordered interface {
	~int | ~int64 | ~float64 | ~string
}

func cmpOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
