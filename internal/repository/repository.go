// internal/repository/repository.go
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a compare-and-swap on row_version lost a race.
	ErrConflict = errors.New("record was modified by another request")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
