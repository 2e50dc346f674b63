package person

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/pkg/dbmetrics"
	"github.com/m04kA/HC-RoomService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var personColumns = []string{"id", "name", "email", "preference", "parent_id"}

// Repository репозиторий для работы с людьми
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория людей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает человека
func (r *Repository) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("persons").
		Columns("name", "email", "preference", "parent_id").
		Values(p.Name, p.Email, p.Preference, p.ParentID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает человека по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(personColumns...).
		From("persons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Person
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Preference,
		&p.ParentID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan person: %v", ErrScanRow, err)
	}

	return &p, nil
}

// UpdatePreference обновляет предпочтение по типу гостей
func (r *Repository) UpdatePreference(ctx context.Context, id int64, pref domain.Preference) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("persons").
		Set("preference", pref).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePreference - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePreference - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePreference - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPersonNotFound
	}

	return nil
}

// SetParent назначает или снимает родителя (ответственного за комнату)
func (r *Repository) SetParent(ctx context.Context, id int64, parentID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("persons").
		Set("parent_id", parentID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetParent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetParent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetParent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPersonNotFound
	}

	return nil
}
