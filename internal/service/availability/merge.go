package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
)

// MergeOverlapping сливает пересекающиеся и смежные availability-интервалы
// комнаты в максимальные непрерывные отрезки. Вызывается после каждого
// создания или изменения доступности, поэтому в каждый момент времени
// доступность комнаты покрыта непересекающимися интервалами.
//
// Границы сравниваются по полудню дня: разница 11:59 против 12:01 на стыке
// окон - шум, а не разрыв. Поглощённые интервалы удаляются, выживший
// расширяется до объединённых границ. Результат не зависит от порядка
// появления интервалов.
func (s *Service) MergeOverlapping(ctx context.Context, roomID int64) error {
	list, err := s.intervals.ListByRoom(ctx, roomID, ptr.Ptr(domain.KindAvailability))
	if err != nil {
		return fmt.Errorf("%w: MergeOverlapping - list availability: %v", ErrInternal, err)
	}
	if len(list) < 2 {
		return nil
	}

	cur := list[0]
	for _, next := range list[1:] {
		gap := s.norm.Noon(next.StartAt).After(s.norm.Noon(cur.EndAt))
		if gap {
			cur = next
			continue
		}

		// next начинается внутри (или на стыке) cur - поглощаем
		if next.EndAt.After(cur.EndAt) {
			cur.EndAt = next.EndAt
			if err := s.intervals.UpdateSpan(ctx, cur.ID, cur.StartAt, cur.EndAt); err != nil {
				return fmt.Errorf("%w: MergeOverlapping - extend interval %d: %v", ErrInternal, cur.ID, err)
			}
		}

		if err := s.intervals.Delete(ctx, next.ID); err != nil {
			return fmt.Errorf("%w: MergeOverlapping - delete absorbed interval %d: %v", ErrInternal, next.ID, err)
		}

		s.logger.Info("availability: merged interval %d into %d for room %d", next.ID, cur.ID, roomID)
	}

	return nil
}
