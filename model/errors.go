package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidGridError reports grid input that is not a cuboid of 0/1 cells.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return "invalid grid: " + e.Reason
}

func invalidGrid(format string, args ...interface{}) error {
	return errors.WithStack(&InvalidGridError{Reason: fmt.Sprintf(format, args...)})
}

// DimensionMismatchError reports declared dimensions that do not match the
// cells supplied with them. Actual is zero when only the cell count is known.
type DimensionMismatchError struct {
	Declared Dims
	Actual   Dims
	Cells    int
}

func (e *DimensionMismatchError) Error() string {
	if e.Actual == (Dims{}) {
		return fmt.Sprintf("dimension mismatch: declared %s (%d cells), got %d cells",
			e.Declared, e.Declared.Volume(), e.Cells)
	}
	return fmt.Sprintf("dimension mismatch: declared %s, got %s", e.Declared, e.Actual)
}
