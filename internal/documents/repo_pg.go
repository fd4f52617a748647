package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, file_name, storage_path, category, doc_type, supplier, issue_date, amount, ai_confidence, text_content, created_at, updated_at, deleted_at`

// Insert stores a new document row.
func (r *PGRepo) Insert(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    file_name,
    storage_path,
    category,
    doc_type,
    supplier,
    issue_date,
    amount,
    ai_confidence,
    text_content,
    created_at,
    updated_at,
    deleted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.StoragePath,
		nullString(doc.Category),
		nullString(doc.DocType),
		nullString(doc.Supplier),
		nullTime(doc.IssueDate),
		nullFloat(doc.Amount),
		nullFloat(doc.AIConfidence),
		nullString(doc.TextContent),
		doc.CreatedAt,
		doc.UpdatedAt,
		nullTime(doc.DeletedAt),
	)
	return err
}

// GetByID fetches a document by ID, including soft-deleted ones.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListActive lists non-deleted documents in creation order.
func (r *PGRepo) ListActive(ctx context.Context) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE deleted_at IS NULL
ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// SoftDelete stamps deleted_at/updated_at and returns the updated row.
// Already-deleted rows are re-stamped rather than rejected.
func (r *PGRepo) SoftDelete(ctx context.Context, id string, at time.Time) (Document, error) {
	const query = `
UPDATE documents
SET deleted_at = $1, updated_at = $1
WHERE id = $2
RETURNING ` + documentColumns
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, at, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// HardDelete removes the row entirely.
func (r *PGRepo) HardDelete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var category, docType, supplier, textContent sql.NullString
	var issueDate, deletedAt sql.NullTime
	var amount, aiConfidence sql.NullFloat64
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.StoragePath,
		&category,
		&docType,
		&supplier,
		&issueDate,
		&amount,
		&aiConfidence,
		&textContent,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if category.Valid {
		doc.Category = &category.String
	}
	if docType.Valid {
		doc.DocType = &docType.String
	}
	if supplier.Valid {
		doc.Supplier = &supplier.String
	}
	if issueDate.Valid {
		doc.IssueDate = &issueDate.Time
	}
	if amount.Valid {
		doc.Amount = &amount.Float64
	}
	if aiConfidence.Valid {
		doc.AIConfidence = &aiConfidence.Float64
	}
	if textContent.Valid {
		doc.TextContent = &textContent.String
	}
	if deletedAt.Valid {
		doc.DeletedAt = &deletedAt.Time
	}
	return doc, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
