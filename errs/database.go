package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// NewDatabaseError wraps a repository failure with the operation and entity
// that caused it. gorm's record-not-found is translated to a 404 so handlers
// don't have to special-case it.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s not found", entity),
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("database error during %s", operation),
		Details:    entity,
		Cause:      cause,
	}
}
