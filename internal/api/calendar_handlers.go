package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerCalendarRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "calendarFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/calendar",
		Summary:     "Calendar feed",
		Description: "Scheduled items and due tasks between from and to, bucketed by day. The range defaults to the current month.",
		Tags:        []string{"Calendar"},
	}, s.handleCalendarFeed)
}

// CalendarInput carries the feed range as YYYY-MM-DD dates.
type CalendarInput struct {
	From string `query:"from" doc:"Range start (YYYY-MM-DD), inclusive"`
	To   string `query:"to" doc:"Range end (YYYY-MM-DD), inclusive"`
}

// CalendarOutput wraps the feed for Huma.
type CalendarOutput struct {
	Body *service.CalendarFeed
}

func (s *Server) handleCalendarFeed(ctx context.Context, input *CalendarInput) (*CalendarOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	from, to, err := calendarRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	feed, err := s.services.Calendar.Feed(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &CalendarOutput{Body: feed}, nil
}

// calendarRange parses the from/to dates. Missing bounds default to the
// current month; the end bound covers the whole of its day.
func calendarRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if fromStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, domainerrors.Validation("invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, domainerrors.Validation("invalid to date, expected YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return from, to, nil
}
