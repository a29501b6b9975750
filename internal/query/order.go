package query

import (
	"sort"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// OrderField is one (column, direction) pair of an ordering.
type OrderField struct {
	Column    Column
	Direction Direction
}

// Asc orders by col ascending.
func Asc(col Column) OrderField { return OrderField{Column: col, Direction: Ascending} }

// Desc orders by col descending.
func Desc(col Column) OrderField { return OrderField{Column: col, Direction: Descending} }

// OrderSpec is an ordered list of sort keys.
type OrderSpec struct {
	fields []OrderField
}

// OrderBy builds an ordering. It panics on a column that was not obtained
// from this package.
func OrderBy(fields ...OrderField) OrderSpec {
	for _, f := range fields {
		mustValid(f.Column)
	}
	return OrderSpec{fields: append([]OrderField(nil), fields...)}
}

// WithTieBreak appends col ascending unless o already orders by it,
// making the ordering total when col is unique.
func (o OrderSpec) WithTieBreak(col Column) OrderSpec {
	mustValid(col)
	for _, f := range o.fields {
		if f.Column == col {
			return o
		}
	}
	fields := append(append([]OrderField(nil), o.fields...), Asc(col))
	return OrderSpec{fields: fields}
}

// Fields returns a copy of the sort keys.
func (o OrderSpec) Fields() []OrderField {
	return append([]OrderField(nil), o.fields...)
}

// Expressions returns the goqu ORDER BY expressions.
func (o OrderSpec) Expressions() []exp.OrderedExpression {
	out := make([]exp.OrderedExpression, len(o.fields))
	for i, f := range o.fields {
		if f.Direction == Descending {
			out[i] = f.Column.Ident().Desc()
		} else {
			out[i] = f.Column.Ident().Asc()
		}
	}
	return out
}

// Apply sets the ORDER BY clause of ds.
func (o OrderSpec) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if len(o.fields) == 0 {
		return ds
	}
	return ds.Order(o.Expressions()...)
}

// Compare orders a before b (-1), after b (1) or equal (0) under o.
func (o OrderSpec) Compare(a, b Row) int {
	for _, f := range o.fields {
		c := compare(a.Field(f.Column.key), b.Field(f.Column.key))
		if c == 0 {
			continue
		}
		if f.Direction == Descending {
			return -c
		}
		return c
	}
	return 0
}

// Sort orders rows in place under o. Rows equal under o keep their relative order.
func Sort[R Row](rows []R, o OrderSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		return o.Compare(rows[i], rows[j]) < 0
	})
}

// AppointmentOrder is the canonical appointment list ordering: most recent
// date and time first, ties broken by appointment id ascending.
func AppointmentOrder() OrderSpec {
	return OrderBy(Desc(AppointmentDate), Desc(AppointmentTime)).WithTieBreak(AppointmentID)
}

// UpcomingOrder lists the soonest appointments first.
func UpcomingOrder() OrderSpec {
	return OrderBy(Asc(AppointmentDate), Asc(AppointmentTime)).WithTieBreak(AppointmentID)
}

// DoctorOrder lists doctors alphabetically.
func DoctorOrder() OrderSpec {
	return OrderBy(Asc(DoctorName)).WithTieBreak(DoctorID)
}

// PatientOrder lists patients alphabetically.
func PatientOrder() OrderSpec {
	return OrderBy(Asc(PatientName)).WithTieBreak(PatientID)
}

// UserOrder lists the newest accounts first.
func UserOrder() OrderSpec {
	return OrderBy(Desc(UserCreatedAt)).WithTieBreak(UserID)
}

// NewsOrder lists the newest articles first.
func NewsOrder() OrderSpec {
	return OrderBy(Desc(NewsCreatedAt)).WithTieBreak(NewsID)
}
