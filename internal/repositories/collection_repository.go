package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // For pq.Error
)

// Table names of the document collections.
const (
	TableSizes         = "sizes"
	TableFrameTypes    = "frame_types"
	TablePaintings     = "paintings"
	TableClients       = "clients"
	TableBlogPosts     = "blog_posts"
	TableHeroSlides    = "hero_slides"
	TableCategories    = "categories"
	TableSubcategories = "subcategories"
)

// CollectionRepository stores plain records of one resource as JSON documents keyed by id.
type CollectionRepository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, id string, doc *T) error
	Update(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
}

type collectionRepository[T any] struct {
	db    SQLExecutor
	table string
}

// NewCollectionRepository binds a repository to one of the Table* document tables.
func NewCollectionRepository[T any](db SQLExecutor, table string) CollectionRepository[T] {
	return &collectionRepository[T]{db: db, table: table}
}

func (r *collectionRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s ORDER BY created_at ASC`, r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", ErrDatabaseError, r.table, err)
	}
	defer rows.Close()

	docs := []T{}
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %v", ErrDatabaseError, r.table, err)
	}
	return docs, nil
}

func (r *collectionRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, r.table)
	doc, err := r.scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *collectionRepository[T]) Create(ctx context.Context, id string, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", r.table, err)
	}
	now := time.Now().UTC()
	query := fmt.Sprintf(`INSERT INTO %s (id, data, created_at, updated_at) VALUES ($1, $2, $3, $4)`, r.table)
	if _, err := r.db.ExecContext(ctx, query, id, data, now, now); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating %s document: %v", ErrDatabaseError, r.table, err)
	}
	return nil
}

func (r *collectionRepository[T]) Update(ctx context.Context, id string, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", r.table, err)
	}
	query := fmt.Sprintf(`UPDATE %s SET data = $1, updated_at = $2 WHERE id = $3`, r.table)
	result, err := r.db.ExecContext(ctx, query, data, time.Now().UTC(), id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating %s document %s: %v", ErrDatabaseError, r.table, id, err)
	}
	return requireAffected(result, r.table, id)
}

func (r *collectionRepository[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting %s document %s: %v", ErrDatabaseError, r.table, id, err)
	}
	return requireAffected(result, r.table, id)
}

func (r *collectionRepository[T]) scanDocument(s scanner) (*T, error) {
	var data []byte
	if err := s.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning %s document: %v", ErrDatabaseError, r.table, err)
	}
	doc := new(T)
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: decoding %s document: %v", ErrDatabaseError, r.table, err)
	}
	return doc, nil
}

func requireAffected(result sql.Result, table, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking affected rows for %s %s: %v", ErrDatabaseError, table, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
