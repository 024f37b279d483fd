package reportservice

import "errors"

// ErrEmptyReport is returned when rendering a report without rows.
var ErrEmptyReport = errors.New("report has no results")
