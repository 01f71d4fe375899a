package domain

import "errors"

var (
	// ErrSchemaViolation marks a record or feature vector whose shape breaks
	// the fixed contract (wrong feature count, missing (unit, date) key).
	// Fatal for the single record, never for the batch.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrUnknownUnit marks a unit name that does not normalize into the
	// canonical 17-unit set. The record is excluded from aggregation.
	ErrUnknownUnit = errors.New("unknown unit name")
)
