// Package crud holds the row operations shared by every admin-managed resource.
// All resources are keyed by a uuid "id" column.
package crud

import (
	"context"
	"errors"

	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// List returns every row of T ordered by order (e.g. "created_at DESC").
func List[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	items := make([]T, 0)
	if err := db.WithContext(ctx).Order(order).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the row with the given id or domain.ErrNotFound.
func Get[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var item T
	if err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts item.
func Create[T any](ctx context.Context, db *gorm.DB, item *T) error {
	return db.WithContext(ctx).Create(item).Error
}

// Update applies fields (column -> value) to the row and returns the stored row.
// Fields absent from the map keep their value.
func Update[T any](ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*T, error) {
	if _, err := Get[T](ctx, db, id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return Get[T](ctx, db, id)
}

// Delete removes the row. Deleting an absent row is not an error.
func Delete[T any](ctx context.Context, db *gorm.DB, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

// Count returns the number of rows of T matching the optional condition.
func Count[T any](ctx context.Context, db *gorm.DB, query interface{}, args ...interface{}) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(new(T))
	if query != nil {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Fields collects the non-nil pointer values of a partial update.
type Fields map[string]interface{}

// SetString records column=*v when v is non-nil.
func (f Fields) SetString(column string, v *string) {
	if v != nil {
		f[column] = *v
	}
}
