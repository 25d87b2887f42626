package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vdbrink/proximascore/internal/service"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrUnknownTable = errors.New("unknown cache table")
)

// cacheTables are the only namespaces a store will touch. Table names are
// interpolated into SQL, so they must come from this fixed set.
var cacheTables = []string{service.TableGeocode, service.TablePOI}

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateTable(table string) error {
	for _, t := range cacheTables {
		if t == table {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTable, table)
}
