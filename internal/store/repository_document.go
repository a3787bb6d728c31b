package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/MKhiriev/mini-capstone/models"
)

// documentRepository implements [backend.DocumentStore] over the documents
// and document_fields tables. The payload of a document is kept as its typed
// JSON encoding; the scalar top-level fields are additionally indexed so that
// queries can filter and order in SQL.
type documentRepository struct {
	db     *DB
	newID  func() string
	now    func() time.Time
	logger *logger.Logger
}

// NewDocumentRepository constructs a [backend.DocumentStore] backed by db.
func NewDocumentRepository(db *DB, logger *logger.Logger) backend.DocumentStore {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		newID:  utils.NewUUIDGenerator().Generate,
		now:    storeNow,
		logger: logger,
	}
}

// storeNow is the current time at the precision every supported database
// keeps.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func sortedFieldNames(fields models.Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func encodeStoredFields(fields models.Fields) (string, error) {
	encoded, err := models.EncodeFields(fields)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(encoded)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func decodeStoredFields(payload string) (models.Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	fields, err := models.DecodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	return fields, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner, collection string) (models.Document, error) {
	var (
		doc     = models.Document{Collection: collection}
		payload string
	)
	if err := row.Scan(&doc.ID, &payload, &doc.CreateTime, &doc.UpdateTime); err != nil {
		return models.Document{}, err
	}

	fields, err := decodeStoredFields(payload)
	if err != nil {
		return models.Document{}, err
	}
	doc.Fields = fields
	doc.CreateTime = doc.CreateTime.UTC()
	doc.UpdateTime = doc.UpdateTime.UTC()

	return doc, nil
}

// Add implements [backend.DocumentStore].
func (r *documentRepository) Add(ctx context.Context, collection string, fields models.Fields) (models.Document, error) {
	return r.write(ctx, collection, r.newID(), fields)
}

// Set implements [backend.DocumentStore]. An existing document keeps its
// create time.
func (r *documentRepository) Set(ctx context.Context, collection, id string, fields models.Fields) (models.Document, error) {
	if id == "" {
		return models.Document{}, fmt.Errorf("%w: empty document id", backend.ErrInvalidQuery)
	}
	return r.write(ctx, collection, id, fields)
}

func (r *documentRepository) write(ctx context.Context, collection, id string, fields models.Fields) (models.Document, error) {
	log := logger.FromContext(ctx)

	if collection == "" {
		return models.Document{}, fmt.Errorf("%w: empty collection", backend.ErrInvalidQuery)
	}

	payload, err := encodeStoredFields(fields)
	if err != nil {
		return models.Document{}, err
	}
	indexQuery, indexArgs, err := buildInsertDocumentFieldsQuery(r.db.builder, collection, id, fields)
	if err != nil {
		return models.Document{}, err
	}

	now := r.now()
	doc := models.Document{ID: id, Collection: collection, CreateTime: now, UpdateTime: now}

	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildSelectCreateTimeQuery(r.db.builder, collection, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		var createTime time.Time
		switch err = tx.QueryRowContext(ctx, query, args...).Scan(&createTime); {
		case errors.Is(err, sql.ErrNoRows):
			query, args, err = buildInsertDocumentQuery(r.db.builder, collection, id, payload, now, now)
		case err != nil:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		default:
			doc.CreateTime = createTime.UTC()
			query, args, err = buildUpdateDocumentQuery(r.db.builder, collection, id, payload, now)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildDeleteDocumentFieldsQuery(r.db.builder, collection, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if indexQuery == "" {
			return nil
		}
		if _, err = tx.ExecContext(ctx, indexQuery, indexArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.write").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to write document")
		return models.Document{}, err
	}

	// return the values as a later read would see them
	doc.Fields, err = decodeStoredFields(payload)
	if err != nil {
		return models.Document{}, err
	}

	return doc, nil
}

// Get implements [backend.DocumentStore].
func (r *documentRepository) Get(ctx context.Context, collection, id string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDocumentQuery(r.db.builder, collection, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var doc models.Document
	err = r.db.withRetry(ctx, func() error {
		doc, err = scanDocument(r.db.QueryRowContext(ctx, query, args...), collection)
		return err
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Document{}, fmt.Errorf("%w: %s/%s", backend.ErrDocumentNotFound, collection, id)
	case errors.Is(err, ErrCorruptDocument):
		return models.Document{}, err
	case err != nil:
		log.Err(err).
			Str("func", "documentRepository.Get").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to get document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc, nil
}

// Delete implements [backend.DocumentStore].
func (r *documentRepository) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildDeleteDocumentFieldsQuery(r.db.builder, collection, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildDeleteDocumentQuery(r.db.builder, collection, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to delete document")
	}

	return err
}

// Query implements [backend.DocumentStore].
func (r *documentRepository) Query(ctx context.Context, q models.Query) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildQueryDocumentsQuery(r.db.builder, q)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	err = r.db.withRetry(ctx, func() error {
		docs, err = r.queryDocuments(ctx, q.Collection, query, args)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Query").
			Str("collection", q.Collection).
			Msg("failed to query documents")
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) queryDocuments(ctx context.Context, collection, query string, args []any) ([]models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows, collection)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}
