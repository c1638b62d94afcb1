package in

import (
	"context"

	"tomato/internal/modules/history/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.RecordOutput, error)
	List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
	Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) (dto.ReindexOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
