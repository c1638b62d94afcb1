package in

import (
	"context"

	historydto "tomato/internal/modules/history/dto"
	historyin "tomato/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, window string) (historydto.ListOutput, error) {
	return h.usecase.List(ctx, historydto.ListInput{Window: window})
}

func (h CLIHandler) Stats(ctx context.Context, window string) (historydto.StatsOutput, error) {
	return h.usecase.Stats(ctx, historydto.StatsInput{Window: window})
}

func (h CLIHandler) Reindex(ctx context.Context) (historydto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx, historydto.ReindexInput{})
}

func (h CLIHandler) Export(ctx context.Context, dir, window string) (historydto.ExportOutput, error) {
	return h.usecase.Export(ctx, historydto.ExportInput{Dir: dir, Window: window})
}
