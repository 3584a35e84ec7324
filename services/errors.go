package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers package.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrClassNameRequired     = errors.New("class name is required")
	ErrSportNameRequired     = errors.New("sport name is required")
	ErrStudentFieldsRequired = errors.New("class_id, student_number, name_zh and name_en are required")
	ErrResultFieldsRequired  = errors.New("student_id, sport_id, time_min and time_sec are required")
	ErrResultTimeInvalid     = errors.New("time_min and time_sec must be non-negative")
	ErrImportFileRequired    = errors.New("a CSV file is required")
	ErrImportEmptyPayload    = errors.New("the CSV payload contains no rows")

	// Conflicts
	ErrClassNameConflict = errors.New("class name already exists")
	ErrSportNameConflict = errors.New("sport name already exists")
	ErrClassInUse        = errors.New("class cannot be deleted while students reference it")
	ErrSportInUse        = errors.New("sport cannot be deleted while results reference it")
	ErrResultConflict    = errors.New("a concurrent submission already recorded this result")

	// Entity-specific not-found (more context than the generic ErrNotFound)
	ErrClassNotFound          = errors.New("class not found")
	ErrSportNotFound          = errors.New("sport not found")
	ErrStudentNotFound        = errors.New("student not found")
	ErrResultNotFound         = errors.New("result not found")
	ErrResultReferenceInvalid = errors.New("result references an unknown student or sport")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
)

// ImportValidationError carries every per-line problem found during the
// bulk-import validation pre-pass. A non-empty list aborts the whole import.
type ImportValidationError struct {
	Lines []string
}

func (e *ImportValidationError) Error() string {
	return "CSV payload failed validation"
}
