package backup

import (
	"fmt"
)

// AuthInitError indicates the Smartsheet client could not be created.
type AuthInitError struct {
	Err error
}

func (e *AuthInitError) Error() string {
	return fmt.Sprintf("unable to initialise Smartsheet client (%v)", e.Err)
}

func (e *AuthInitError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates no sheet has the requested name.
type NotFoundError struct {
	Sheet string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no sheet named '%s'", e.Sheet)
}

// AmbiguousNameError indicates more than one sheet has the requested name.
type AmbiguousNameError struct {
	Sheet string
	IDs   []int64
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%d sheets named '%s' %v", len(e.IDs), e.Sheet, e.IDs)
}

// FetchError is a failed API call. Row and Column are only set for cell history fetches.
type FetchError struct {
	Op     string
	Sheet  string
	Row    int
	Column string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s failed for sheet '%s', column '%s', row %d (%v)", e.Op, e.Sheet, e.Column, e.Row, e.Err)
	}

	if e.Sheet != "" {
		return fmt.Sprintf("%s failed for sheet '%s' (%v)", e.Op, e.Sheet, e.Err)
	}

	return fmt.Sprintf("%s failed (%v)", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// WriteError is a failure to serialize or store the backup (or its log, lock or off-site copy).
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing %s (%v)", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
