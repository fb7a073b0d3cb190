package errors

import (
	"fmt"
)

// UnsupportedAnalyzerKindError occurs when an AnalyzerSpec matches no known
// variant. This is a non-recoverable configuration error, not a data error.
type UnsupportedAnalyzerKindError struct{ Spec interface{} }

// Error returns a textual representation of this UnsupportedAnalyzerKindError
func (e UnsupportedAnalyzerKindError) Error() string {
	return fmt.Sprintf("Analyzer spec type %T is not supported", e.Spec)
}

// EmptyInputError occurs when a Combiner which requires non-empty input
// observes zero Batches
type EmptyInputError struct{}

// Error returns a textual representation of this EmptyInputError
func (e EmptyInputError) Error() string {
	return "Combiner requires non-empty input but zero batches were observed"
}

// ArtifactWriteError occurs when an artifact cannot be durably written to its
// output location. No partial artifact is exposed.
type ArtifactWriteError struct {
	Location string
	Err      error
}

// Error returns a textual representation of this ArtifactWriteError
func (e ArtifactWriteError) Error() string {
	return fmt.Sprintf("Unable to write artifact to %s: %v", e.Location, e.Err)
}

// Unwrap returns the underlying write error
func (e ArtifactWriteError) Unwrap() error {
	return e.Err
}

// NoMoreBatchesError occurs when there are no more batches in a BatchIterator
type NoMoreBatchesError struct{}

// Error returns a textual representation of this NoMoreBatchesError
func (e NoMoreBatchesError) Error() string {
	return "No more batches"
}

// IncompatibleBatchError occurs when the Columns of a Batch are not all the same length
type IncompatibleBatchError struct{}

// Error returns a textual representation of this IncompatibleBatchError
func (e IncompatibleBatchError) Error() string {
	return "Batch columns are not all the same length"
}
