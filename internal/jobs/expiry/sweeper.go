package expiry

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая зачистка календарей: удаляет истёкшие брони и
// невалидные пустые интервалы. Запускается планировщиком по расписанию.
type Sweeper struct {
	intervals IntervalRepository
	clock     timeutil.Clock
	norm      *timeutil.Normalizer
	logger    Logger
}

// NewSweeper создает зачистку календарей
func NewSweeper(intervals IntervalRepository, clock timeutil.Clock, norm *timeutil.Normalizer, logger Logger) *Sweeper {
	return &Sweeper{
		intervals: intervals,
		clock:     clock,
		norm:      norm,
		logger:    logger,
	}
}

// Run выполняет один проход зачистки
func (s *Sweeper) Run(ctx context.Context) {
	now := s.norm.InZone(s.clock.Now())

	deleted, err := s.intervals.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("expiry: sweep failed: %v", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("expiry: removed %d expired intervals", deleted)
	}
}
