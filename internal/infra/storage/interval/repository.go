package interval

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/pkg/dbmetrics"
	"github.com/m04kA/HC-RoomService/pkg/psqlbuilder"
)

var intervalColumns = []string{
	"id",
	"room_id",
	"kind",
	"start_at",
	"end_at",
	"title",
	"guest_name",
	"guest_type",
	"creator_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с интервалами календарей комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория интервалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает интервал (доступность или занятость).
// Если в контексте передана активная транзакция, использует её.
//
// Пересекающиеся occupancy-интервалы одной комнаты отклоняются exclusion
// constraint на уровне БД - это страховка от двойного бронирования при
// одновременных запросах; нарушение транслируется в ErrOverlap.
func (r *Repository) Create(ctx context.Context, iv *domain.Interval) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("intervals").
		Columns(
			"room_id",
			"kind",
			"start_at",
			"end_at",
			"title",
			"guest_name",
			"guest_type",
			"creator_id",
		).
		Values(
			iv.RoomID,
			iv.Kind,
			iv.StartAt,
			iv.EndAt,
			iv.Title,
			iv.GuestName,
			iv.GuestType,
			iv.CreatorID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&iv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	iv.CreatedAt = createdAt.Time
	iv.UpdatedAt = updatedAt.Time

	return iv, nil
}

// TryCreate создает интервал под точкой сохранения: нарушение exclusion
// constraint откатывает только вставку, оставляя объемлющую транзакцию
// живой. Без savepoint ошибка 23P01 переводит транзакцию в aborted-состояние,
// и все последующие запросы падают с 25P02.
//
// Используется перебором кандидатов при переселении - занятый кандидат
// не должен убивать всю перестройку. Вне транзакции эквивалентен Create.
func (r *Repository) TryCreate(ctx context.Context, iv *domain.Interval) (*domain.Interval, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return r.Create(ctx, iv)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SAVEPOINT candidate_insert"); err != nil {
		return nil, fmt.Errorf("%w: TryCreate - savepoint: %v", ErrExecQuery, err)
	}

	created, err := r.Create(ctx, iv)
	if errors.Is(err, ErrOverlap) {
		if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT candidate_insert"); rbErr != nil {
			return nil, fmt.Errorf("%w: TryCreate - rollback to savepoint: %v", ErrExecQuery, rbErr)
		}
		return nil, ErrOverlap
	}
	if err != nil {
		return nil, err
	}

	if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT candidate_insert"); err != nil {
		return nil, fmt.Errorf("%w: TryCreate - release savepoint: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает интервал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	iv, err := scanInterval(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrIntervalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan interval: %v", ErrScanRow, err)
	}

	return iv, nil
}

// UpdateSpan обновляет границы интервала
func (r *Repository) UpdateSpan(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("intervals").
		Set("start_at", start).
		Set("end_at", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSpan - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrOverlap
		}
		return fmt.Errorf("%w: UpdateSpan - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSpan - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrIntervalNotFound
	}

	return nil
}

// Delete удаляет интервал
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrIntervalNotFound
	}

	return nil
}

// ListByRoom получает интервалы комнаты, отсортированные по началу.
// Опционально фильтрует по виду интервала.
func (r *Repository) ListByRoom(ctx context.Context, roomID int64, kind *domain.IntervalKind) ([]*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("start_at ASC")

	if kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *kind})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// HasOccupancyOverlap проверяет, есть ли occupancy-интервал комнаты,
// строго пересекающий [start, end). Граничные случаи пересечением не считаются.
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы закрыть гонку
// проверка-потом-вставка при одновременных бронированиях.
func (r *Repository) HasOccupancyOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("intervals").
		Where(squirrel.Eq{"room_id": roomID, "kind": domain.KindOccupancy}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOccupancyOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasOccupancyOverlap - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// AvailabilityContaining получает availability-интервал комнаты, полностью
// содержащий [start, end). Для точки передаются равные start и end.
func (r *Repository) AvailabilityContaining(ctx context.Context, roomID int64, start, end time.Time) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"room_id": roomID, "kind": domain.KindAvailability}).
		Where(squirrel.LtOrEq{"start_at": start}).
		Where(squirrel.GtOrEq{"end_at": end}).
		OrderBy("start_at ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AvailabilityContaining - build select query: %v", ErrBuildQuery, err)
	}

	iv, err := scanInterval(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrIntervalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AvailabilityContaining - scan interval: %v", ErrScanRow, err)
	}

	return iv, nil
}

// NextOccupancy получает ближайший occupancy-интервал комнаты, начинающийся
// в [from, before). Только следующая бронь ограничивает непрерывное
// проживание - всё, что за ней, не имеет значения.
func (r *Repository) NextOccupancy(ctx context.Context, roomID int64, from, before time.Time) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"room_id": roomID, "kind": domain.KindOccupancy}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": before}).
		OrderBy("start_at ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: NextOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	iv, err := scanInterval(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrIntervalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: NextOccupancy - scan interval: %v", ErrScanRow, err)
	}

	return iv, nil
}

// OccupanciesWithin получает occupancy-интервалы комнаты, полностью лежащие
// внутри [spanStart, spanEnd], отсортированные по началу.
//
// Используется обработчиком изменений доступности; внутри транзакции строки
// блокируются (FOR UPDATE), чтобы никто не менял их параллельно.
func (r *Repository) OccupanciesWithin(ctx context.Context, roomID int64, spanStart, spanEnd time.Time) ([]*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"room_id": roomID, "kind": domain.KindOccupancy}).
		Where(squirrel.GtOrEq{"start_at": spanStart}).
		Where(squirrel.LtOrEq{"end_at": spanEnd}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: OccupanciesWithin - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OccupanciesWithin - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// DeleteAvailabilityByRoom удаляет все availability-интервалы комнаты.
// Вызывается при смене владельца: новый владелец объявляет доступность заново.
func (r *Repository) DeleteAvailabilityByRoom(ctx context.Context, roomID int64) error {
	return r.deleteAvailability(ctx, squirrel.Eq{"room_id": roomID})
}

// DeleteAvailabilityByRooms удаляет availability-интервалы набора комнат.
// Вызывается при переводе секции в offline.
func (r *Repository) DeleteAvailabilityByRooms(ctx context.Context, roomIDs []int64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	return r.deleteAvailability(ctx, squirrel.Eq{"room_id": roomIDs})
}

func (r *Repository) deleteAvailability(ctx context.Context, pred squirrel.Eq) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("intervals").
		Where(squirrel.Eq{"kind": domain.KindAvailability}).
		Where(pred).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteAvailability - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteAvailability - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет истёкшие occupancy-интервалы (end_at в прошлом)
// и невалидные пустые интервалы (start_at >= end_at). Возвращает число
// удалённых строк. Вызывается фоновой зачисткой.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("intervals").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"kind": domain.KindOccupancy},
				squirrel.LtOrEq{"end_at": now},
			},
			squirrel.Expr("start_at >= end_at"),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanInterval сканирует одну строку в domain.Interval
func scanInterval(row rowScanner) (*domain.Interval, error) {
	var iv domain.Interval
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&iv.ID,
		&iv.RoomID,
		&iv.Kind,
		&iv.StartAt,
		&iv.EndAt,
		&iv.Title,
		&iv.GuestName,
		&iv.GuestType,
		&iv.CreatorID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	iv.CreatedAt = createdAt.Time
	iv.UpdatedAt = updatedAt.Time

	return &iv, nil
}

// scanIntervals сканирует результаты запроса в слайс интервалов
func scanIntervals(rows *sql.Rows) ([]*domain.Interval, error) {
	intervals := make([]*domain.Interval, 0)

	for rows.Next() {
		iv, err := scanInterval(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanIntervals - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// isExclusionViolation проверяет нарушение exclusion constraint (SQLSTATE 23P01)
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01"
	}
	return false
}
