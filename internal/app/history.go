package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) RecentRuns(ctx context.Context, req HistoryRequest) (HistoryResult, error) {
	if s.History == nil {
		return HistoryResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("run history is not configured")
	}
	records, err := s.History.Recent(ctx, req.Limit)
	if err != nil {
		return HistoryResult{}, err
	}
	return HistoryResult{Records: records}, nil
}
