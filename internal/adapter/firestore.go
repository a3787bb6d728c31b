package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/MKhiriev/mini-capstone/models"
	"github.com/go-resty/resty/v2"
)

type documentStore struct {
	client *utils.HTTPClient
	apiKey string

	// root is "projects/{project}/databases/(default)/documents".
	root string

	logger *logger.Logger
}

func newDocumentStore(client *utils.HTTPClient, cfg config.Backend, log *logger.Logger) *documentStore {
	return &documentStore{
		client: client,
		apiKey: cfg.APIKey,
		root:   "projects/" + url.PathEscape(cfg.ProjectID) + "/databases/(default)/documents",
		logger: log,
	}
}

// restDocument is the wire form of a document.
type restDocument struct {
	Name       string                     `json:"name,omitempty"`
	Fields     map[string]json.RawMessage `json:"fields,omitempty"`
	CreateTime string                     `json:"createTime,omitempty"`
	UpdateTime string                     `json:"updateTime,omitempty"`
}

func (d restDocument) document() (models.Document, error) {
	fields, err := models.DecodeFields(d.Fields)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	// name is ".../documents/{collection}/{id}"
	_, path, _ := strings.Cut(d.Name, "/documents/")
	collection, id := path, ""
	if i := strings.LastIndex(path, "/"); i >= 0 {
		collection, id = path[:i], path[i+1:]
	}

	doc := models.Document{ID: id, Collection: collection, Fields: fields}
	doc.CreateTime, _ = time.Parse(time.RFC3339Nano, d.CreateTime)
	doc.UpdateTime, _ = time.Parse(time.RFC3339Nano, d.UpdateTime)

	return doc, nil
}

func encodeBody(fields models.Fields) (map[string]any, error) {
	encoded, err := models.EncodeFields(fields)
	if err != nil {
		return nil, err
	}
	return map[string]any{"fields": encoded}, nil
}

// request starts a request carrying the caller's ID token, so the document
// database evaluates its security rules as that user.
func (s *documentStore) request(ctx context.Context) *resty.Request {
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey)
	if idToken, ok := utils.IDTokenFromContext(ctx); ok {
		req.SetAuthToken(idToken)
	}
	return req
}

func (s *documentStore) collectionPath(collection string) string {
	return "/" + s.root + "/" + url.PathEscape(collection)
}

func (s *documentStore) documentPath(collection, id string) string {
	return s.collectionPath(collection) + "/" + url.PathEscape(id)
}

// Add implements [backend.DocumentStore]. The document ID is generated by
// the database.
func (s *documentStore) Add(ctx context.Context, collection string, fields models.Fields) (models.Document, error) {
	body, err := encodeBody(fields)
	if err != nil {
		return models.Document{}, err
	}

	var result restDocument
	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(s.collectionPath(collection))
	if err != nil {
		return models.Document{}, fmt.Errorf("add document request: %w", err)
	}
	if err = mapDocumentError(resp); err != nil {
		return models.Document{}, err
	}

	return result.document()
}

// Set implements [backend.DocumentStore]. Without an update mask PATCH
// replaces the whole document, creating it when missing.
func (s *documentStore) Set(ctx context.Context, collection, id string, fields models.Fields) (models.Document, error) {
	body, err := encodeBody(fields)
	if err != nil {
		return models.Document{}, err
	}

	var result restDocument
	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Patch(s.documentPath(collection, id))
	if err != nil {
		return models.Document{}, fmt.Errorf("set document request: %w", err)
	}
	if err = mapDocumentError(resp); err != nil {
		return models.Document{}, err
	}

	return result.document()
}

// Get implements [backend.DocumentStore].
func (s *documentStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	var result restDocument
	resp, err := s.request(ctx).
		SetResult(&result).
		Get(s.documentPath(collection, id))
	if err != nil {
		return models.Document{}, fmt.Errorf("get document request: %w", err)
	}
	if err = mapDocumentError(resp); err != nil {
		return models.Document{}, err
	}

	return result.document()
}

// Delete implements [backend.DocumentStore].
func (s *documentStore) Delete(ctx context.Context, collection, id string) error {
	resp, err := s.request(ctx).Delete(s.documentPath(collection, id))
	if err != nil {
		return fmt.Errorf("delete document request: %w", err)
	}

	return mapDocumentError(resp)
}

// Query implements [backend.DocumentStore] via POST documents:runQuery.
func (s *documentStore) Query(ctx context.Context, q models.Query) ([]models.Document, error) {
	structured, err := buildStructuredQuery(q)
	if err != nil {
		return nil, err
	}

	var results []struct {
		Document *restDocument `json:"document"`
	}
	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"structuredQuery": structured}).
		SetResult(&results).
		Post("/" + s.root + ":runQuery")
	if err != nil {
		return nil, fmt.Errorf("run query request: %w", err)
	}
	if err = mapDocumentError(resp); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(results))
	for _, r := range results {
		// results without a document only report the read time
		if r.Document == nil {
			continue
		}
		doc, err := r.Document.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	s.logger.Debug().Str("collection", q.Collection).Int("results", len(docs)).Msg("query executed")

	return docs, nil
}
