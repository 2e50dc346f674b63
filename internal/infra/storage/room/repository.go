package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/pkg/dbmetrics"
	"github.com/m04kA/HC-RoomService/pkg/psqlbuilder"
)

// Колонки комнаты с джойном секции, здания и владельца.
// Планировщику переселения нужны area и preference владельца для каждого
// кандидата, поэтому денормализуем их прямо в выборку.
var roomColumns = []string{
	"r.id",
	"r.section_id",
	"r.number",
	"r.is_offline",
	"s.building_id",
	"b.area",
	"r.owner_id",
	"p.name",
	"p.preference",
}

// Repository репозиторий для работы с комнатами, секциями и зданиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func roomSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(roomColumns...).
		From("rooms r").
		Join("sections s ON s.id = r.section_id").
		Join("buildings b ON b.id = s.building_id").
		LeftJoin("persons p ON p.id = r.owner_id")
}

// Create создает комнату
func (r *Repository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("section_id", "number", "owner_id", "is_offline").
		Values(room.SectionID, room.Number, room.OwnerID, room.IsOffline).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&room.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, room.ID)
}

// GetByID получает комнату по ID вместе с зоной здания и предпочтением владельца
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := roomSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// GetByOwner получает комнату, которой владеет указанный человек
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := roomSelect().
		Where(squirrel.Eq{"r.owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// ListByBuilding получает все комнаты здания
func (r *Repository) ListByBuilding(ctx context.Context, buildingID int64) ([]*domain.Room, error) {
	return r.list(ctx, squirrel.Eq{"s.building_id": buildingID})
}

// ListByAreaExcludingBuilding получает комнаты зданий той же зоны,
// кроме указанного здания
func (r *Repository) ListByAreaExcludingBuilding(ctx context.Context, area string, buildingID int64) ([]*domain.Room, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"b.area": area},
		squirrel.NotEq{"s.building_id": buildingID},
	})
}

// ListOutsideArea получает комнаты зданий вне указанной зоны
func (r *Repository) ListOutsideArea(ctx context.Context, area string) ([]*domain.Room, error) {
	return r.list(ctx, squirrel.NotEq{"b.area": area})
}

func (r *Repository) list(ctx context.Context, pred interface{}) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := roomSelect().
		Where(pred).
		OrderBy("r.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// SetOwner назначает или снимает владельца комнаты (nil - комната без владельца)
func (r *Repository) SetOwner(ctx context.Context, roomID int64, ownerID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("owner_id", ownerID).
		Where(squirrel.Eq{"id": roomID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOwner - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOwner - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOwner - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// SetOffline переключает offline-флаг комнаты
func (r *Repository) SetOffline(ctx context.Context, roomID int64, offline bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("is_offline", offline).
		Where(squirrel.Eq{"id": roomID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOffline - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOffline - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOffline - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// SetBuildingOffline переключает offline-флаг здания
func (r *Repository) SetBuildingOffline(ctx context.Context, buildingID int64, offline bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("buildings").
		Set("is_offline", offline).
		Where(squirrel.Eq{"id": buildingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBuildingOffline - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBuildingOffline - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetBuildingOffline - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBuildingNotFound
	}

	return nil
}

// SetSectionOffline переключает offline-флаг секции
func (r *Repository) SetSectionOffline(ctx context.Context, sectionID int64, offline bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sections").
		Set("is_offline", offline).
		Where(squirrel.Eq{"id": sectionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSectionOffline - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSectionOffline - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetSectionOffline - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSectionNotFound
	}

	return nil
}

// SetRoomsOfflineBySection переключает offline-флаг всех комнат секции
func (r *Repository) SetRoomsOfflineBySection(ctx context.Context, sectionID int64, offline bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("is_offline", offline).
		Where(squirrel.Eq{"section_id": sectionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetRoomsOfflineBySection - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetRoomsOfflineBySection - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListSectionsByBuilding получает секции здания
func (r *Repository) ListSectionsByBuilding(ctx context.Context, buildingID int64) ([]*domain.Section, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "building_id", "name", "is_offline").
		From("sections").
		Where(squirrel.Eq{"building_id": buildingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSectionsByBuilding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSectionsByBuilding - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sections := make([]*domain.Section, 0)
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.BuildingID, &s.Name, &s.IsOffline); err != nil {
			return nil, fmt.Errorf("%w: ListSectionsByBuilding - scan row: %v", ErrScanRow, err)
		}
		sections = append(sections, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSectionsByBuilding - rows error: %v", ErrScanRow, err)
	}

	return sections, nil
}

// ListRoomIDsBySection получает ID комнат секции
func (r *Repository) ListRoomIDsBySection(ctx context.Context, sectionID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("rooms").
		Where(squirrel.Eq{"section_id": sectionID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomIDsBySection - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomIDsBySection - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListRoomIDsBySection - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRoomIDsBySection - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room

	err := row.Scan(
		&room.ID,
		&room.SectionID,
		&room.Number,
		&room.IsOffline,
		&room.BuildingID,
		&room.BuildingArea,
		&room.OwnerID,
		&room.OwnerName,
		&room.OwnerPreference,
	)
	if err != nil {
		return nil, err
	}

	return &room, nil
}
