// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Operator is a comparison operator used in a [Filter].
type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
)

// Valid reports whether o is one of the supported operators.
func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		return true
	}
	return false
}

// Direction is the sort direction of an [Order].
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Filter restricts a query to documents whose field compares to Value.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Order sorts query results by a single field.
type Order struct {
	Field     string
	Direction Direction
}

// Query selects documents from one collection.
//
// Filters are combined with AND. A zero Limit means no limit.
// Query values are immutable: the builder methods return modified copies.
type Query struct {
	Collection string
	Filters    []Filter
	Orders     []Order
	Limit      int
}

// NewQuery starts a query over collection.
func NewQuery(collection string) Query {
	return Query{Collection: collection}
}

// Where returns a copy of q with an additional filter.
func (q Query) Where(field string, op Operator, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

// OrderBy returns a copy of q with an additional sort order.
func (q Query) OrderBy(field string, direction Direction) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Field: field, Direction: direction})
	return q
}

// WithLimit returns a copy of q returning at most n documents.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}
