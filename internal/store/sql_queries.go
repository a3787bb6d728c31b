// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/models"
)

const (
	documentsTable       = "documents"
	documentFieldsTable  = "document_fields"
	accountsTable        = "accounts"
	sessionsTable        = "sessions"
	analyticsEventsTable = "analytics_events"
)

var (
	documentColumns = []string{"d.id", "d.fields", "d.create_time", "d.update_time"}
	accountColumns  = []string{"uid", "email", "password_hash", "display_name", "created_at"}
)

// Comparison kinds of the document_fields index. Integers and doubles share
// the number kind so that they compare with each other.
const (
	indexKindNull      = "null"
	indexKindBoolean   = "boolean"
	indexKindNumber    = "number"
	indexKindString    = "string"
	indexKindTimestamp = "timestamp"
)

var sqlOperators = map[models.Operator]string{
	models.OpEqual:          "=",
	models.OpNotEqual:       "<>",
	models.OpLess:           "<",
	models.OpLessOrEqual:    "<=",
	models.OpGreater:        ">",
	models.OpGreaterOrEqual: ">=",
}

// indexedValue is one row of the document_fields index.
type indexedValue struct {
	kind   string
	text   any // string or nil
	number any // float64 or nil
}

// indexValue returns the index row for v. Arrays, maps and bytes are not
// indexed and report ok == false.
func indexValue(v any) (indexedValue, bool, error) {
	kind, err := models.ValueKind(v)
	if err != nil {
		return indexedValue{}, false, err
	}

	switch kind {
	case models.NullValue:
		return indexedValue{kind: indexKindNull}, true, nil
	case models.BooleanValue:
		n := 0.0
		if v.(bool) {
			n = 1
		}
		return indexedValue{kind: indexKindBoolean, number: n}, true, nil
	case models.IntegerValue, models.DoubleValue:
		return indexedValue{kind: indexKindNumber, number: toFloat(v)}, true, nil
	case models.StringValue:
		return indexedValue{kind: indexKindString, text: v.(string)}, true, nil
	case models.TimestampValue:
		return indexedValue{kind: indexKindTimestamp, text: v.(time.Time).UTC().Format(models.TimestampLayout)}, true, nil
	}

	return indexedValue{}, false, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// ── documents ─────────────────────────────────────────────────────────────────

func buildSelectDocumentQuery(b sq.StatementBuilderType, collection, id string) (string, []any, error) {
	return b.Select(documentColumns...).
		From(documentsTable + " d").
		Where(sq.Eq{"d.collection": collection, "d.id": id}).
		ToSql()
}

func buildSelectCreateTimeQuery(b sq.StatementBuilderType, collection, id string) (string, []any, error) {
	return b.Select("create_time").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildInsertDocumentQuery(b sq.StatementBuilderType, collection, id, fields string, createTime, updateTime time.Time) (string, []any, error) {
	return b.Insert(documentsTable).
		Columns("collection", "id", "fields", "create_time", "update_time").
		Values(collection, id, fields, createTime, updateTime).
		ToSql()
}

func buildUpdateDocumentQuery(b sq.StatementBuilderType, collection, id, fields string, updateTime time.Time) (string, []any, error) {
	return b.Update(documentsTable).
		Set("fields", fields).
		Set("update_time", updateTime).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildDeleteDocumentQuery(b sq.StatementBuilderType, collection, id string) (string, []any, error) {
	return b.Delete(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildDeleteDocumentFieldsQuery(b sq.StatementBuilderType, collection, id string) (string, []any, error) {
	return b.Delete(documentFieldsTable).
		Where(sq.Eq{"collection": collection, "document_id": id}).
		ToSql()
}

// buildInsertDocumentFieldsQuery indexes the scalar top-level fields of a
// document. It returns an empty query when there is nothing to index.
func buildInsertDocumentFieldsQuery(b sq.StatementBuilderType, collection, id string, fields models.Fields) (string, []any, error) {
	insert := b.Insert(documentFieldsTable).
		Columns("collection", "document_id", "name", "kind", "text_value", "number_value")

	rows := 0
	for _, name := range sortedFieldNames(fields) {
		value, ok, err := indexValue(fields[name])
		if err != nil {
			return "", nil, fmt.Errorf("field %q: %w", name, err)
		}
		if !ok {
			continue
		}
		insert = insert.Values(collection, id, name, value.kind, value.text, value.number)
		rows++
	}

	if rows == 0 {
		return "", nil, nil
	}
	return insert.ToSql()
}

// fieldExists is the correlated subquery selecting the index row of field
// name for the outer document d.
func fieldExists(name string) sq.SelectBuilder {
	return sq.Select("1").
		From(documentFieldsTable + " f").
		Where("f.collection = d.collection AND f.document_id = d.id").
		Where(sq.Eq{"f.name": name})
}

// buildQueryDocumentsQuery translates q into a SELECT over documents. Every
// filter becomes an EXISTS over the field index; ordering by a field skips
// documents without it. Ties are broken by document ID.
func buildQueryDocumentsQuery(b sq.StatementBuilderType, q models.Query) (string, []any, error) {
	if q.Collection == "" {
		return "", nil, fmt.Errorf("%w: empty collection", backend.ErrInvalidQuery)
	}
	if q.Limit < 0 {
		return "", nil, fmt.Errorf("%w: negative limit", backend.ErrInvalidQuery)
	}

	query := b.Select(documentColumns...).
		From(documentsTable + " d").
		Where(sq.Eq{"d.collection": q.Collection})

	for _, f := range q.Filters {
		cond, err := filterCondition(f)
		if err != nil {
			return "", nil, err
		}
		sub, args, err := cond.ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		query = query.Where("EXISTS ("+sub+")", args...)
	}

	for _, o := range q.Orders {
		if o.Field == "" {
			return "", nil, fmt.Errorf("%w: empty order field", backend.ErrInvalidQuery)
		}
		direction := "ASC"
		if o.Direction == models.Descending {
			direction = "DESC"
		}

		exists, args, err := fieldExists(o.Field).ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		query = query.Where("EXISTS ("+exists+")", args...)

		for _, column := range []string{"number_value", "text_value"} {
			sortKey, args, err := sq.Select("f."+column).
				From(documentFieldsTable+" f").
				Where("f.collection = d.collection AND f.document_id = d.id").
				Where(sq.Eq{"f.name": o.Field}).
				ToSql()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			query = query.OrderByClause("("+sortKey+") "+direction, args...)
		}
	}

	query = query.OrderBy("d.id ASC")
	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}

	return query.ToSql()
}

func filterCondition(f models.Filter) (sq.SelectBuilder, error) {
	op, ok := sqlOperators[f.Op]
	if !ok || f.Field == "" {
		return sq.SelectBuilder{}, fmt.Errorf("%w: filter %q %q", backend.ErrInvalidQuery, f.Field, f.Op)
	}

	value, ok, err := indexValue(f.Value)
	if err != nil {
		return sq.SelectBuilder{}, fmt.Errorf("%w: %w", backend.ErrInvalidQuery, err)
	}
	if !ok {
		return sq.SelectBuilder{}, fmt.Errorf("%w: field %q: value of type %T cannot be compared", backend.ErrInvalidQuery, f.Field, f.Value)
	}

	cond := fieldExists(f.Field).Where(sq.Eq{"f.kind": value.kind})
	switch {
	case value.kind == indexKindNull:
		if f.Op != models.OpEqual {
			return sq.SelectBuilder{}, fmt.Errorf("%w: null only supports equality", backend.ErrInvalidQuery)
		}
	case value.text != nil:
		cond = cond.Where("f.text_value "+op+" ?", value.text)
	default:
		cond = cond.Where("f.number_value "+op+" ?", value.number)
	}

	return cond, nil
}

// ── accounts & sessions ───────────────────────────────────────────────────────

func buildInsertAccountQuery(b sq.StatementBuilderType, user models.User, passwordHash string) (string, []any, error) {
	return b.Insert(accountsTable).
		Columns(accountColumns...).
		Values(user.UID, user.Email, passwordHash, user.DisplayName, user.CreatedAt).
		ToSql()
}

func buildSelectAccountQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(where).
		ToSql()
}

func buildUpdateDisplayNameQuery(b sq.StatementBuilderType, uid, displayName string) (string, []any, error) {
	return b.Update(accountsTable).
		Set("display_name", displayName).
		Where(sq.Eq{"uid": uid}).
		ToSql()
}

func buildInsertSessionQuery(b sq.StatementBuilderType, id, uid string, createdAt, expiresAt time.Time) (string, []any, error) {
	return b.Insert(sessionsTable).
		Columns("id", "uid", "created_at", "expires_at").
		Values(id, uid, createdAt, expiresAt).
		ToSql()
}

func buildSelectSessionQuery(b sq.StatementBuilderType, id, uid string) (string, []any, error) {
	return b.Select("revoked", "expires_at").
		From(sessionsTable).
		Where(sq.Eq{"id": id, "uid": uid}).
		ToSql()
}

func buildRevokeSessionQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Update(sessionsTable).
		Set("revoked", true).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// ── analytics ─────────────────────────────────────────────────────────────────

func buildInsertEventQuery(b sq.StatementBuilderType, name, params string, loggedAt time.Time) (string, []any, error) {
	return b.Insert(analyticsEventsTable).
		Columns("name", "params", "logged_at").
		Values(name, params, loggedAt).
		ToSql()
}
