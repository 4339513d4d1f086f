package mock

import (
	"context"

	"github.com/fwojciec/wikicollect"
)

var _ wikicollect.ExportService = (*ExportService)(nil)

// ExportService is a mock implementation of wikicollect.ExportService.
type ExportService struct {
	CreateExportFn func(ctx context.Context, export *wikicollect.Export) error
	FindExportsFn  func(ctx context.Context, filter wikicollect.ExportFilter) ([]*wikicollect.Export, error)
}

func (s *ExportService) CreateExport(ctx context.Context, export *wikicollect.Export) error {
	return s.CreateExportFn(ctx, export)
}

func (s *ExportService) FindExports(ctx context.Context, filter wikicollect.ExportFilter) ([]*wikicollect.Export, error) {
	return s.FindExportsFn(ctx, filter)
}

var _ wikicollect.DatasetPublisher = (*DatasetPublisher)(nil)

// DatasetPublisher is a mock implementation of wikicollect.DatasetPublisher.
type DatasetPublisher struct {
	PublishFn func(ctx context.Context, ds *wikicollect.Dataset) (string, error)
}

func (p *DatasetPublisher) Publish(ctx context.Context, ds *wikicollect.Dataset) (string, error) {
	return p.PublishFn(ctx, ds)
}
