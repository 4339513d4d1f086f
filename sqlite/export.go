package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/wikicollect"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikicollect.ExportService = (*ExportService)(nil)

// ExportService implements wikicollect.ExportService using SQLite.
type ExportService struct {
	db *DB
}

// NewExportService creates a new ExportService.
func NewExportService(db *DB) *ExportService {
	return &ExportService{db: db}
}

const exportColumns = "id, search_term, path, records, content_hash, exported_at"

// CreateExport records a completed export.
func (s *ExportService) CreateExport(ctx context.Context, export *wikicollect.Export) error {
	if err := export.Validate(); err != nil {
		return err
	}

	export.ID = uuid.New().String()
	export.ExportedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (`+exportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, export.ID, export.SearchTerm, export.Path, export.Records, export.ContentHash,
		export.ExportedAt.Format(time.RFC3339))

	return err
}

// FindExportByID retrieves an export by ID.
func (s *ExportService) FindExportByID(ctx context.Context, id string) (*wikicollect.Export, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+exportColumns+" FROM exports WHERE id = ?", id)

	export, err := scanExport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wikicollect.Errorf(wikicollect.ENOTFOUND, "export not found")
	}
	return export, err
}

// FindExports retrieves exports matching the filter, newest first.
func (s *ExportService) FindExports(ctx context.Context, filter wikicollect.ExportFilter) ([]*wikicollect.Export, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + exportColumns + " FROM exports WHERE 1=1")

	if filter.SearchTerm != nil {
		query.WriteString(" AND search_term = ?")
		args = append(args, *filter.SearchTerm)
	}

	query.WriteString(" ORDER BY exported_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []*wikicollect.Export
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		exports = append(exports, export)
	}

	return exports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(s scanner) (*wikicollect.Export, error) {
	var export wikicollect.Export
	var exportedAt string

	if err := s.Scan(&export.ID, &export.SearchTerm, &export.Path, &export.Records,
		&export.ContentHash, &exportedAt); err != nil {
		return nil, err
	}

	t, err := parseRFC3339(exportedAt, "exported_at")
	if err != nil {
		return nil, err
	}
	export.ExportedAt = t

	return &export, nil
}
