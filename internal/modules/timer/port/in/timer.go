package in

import (
	"context"

	"tomato/internal/modules/timer/dto"
)

type Usecase interface {
	Apply(ctx context.Context, input dto.ApplyInput) (dto.ApplyOutput, error)
	Snapshot(ctx context.Context) dto.Snapshot
}
