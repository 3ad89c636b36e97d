package batch

import "fmt"

// RecordEmissionError wraps a statement failure scoped to one business. The
// executor records it in the ledger and moves on; it never aborts the batch
// by itself.
type RecordEmissionError struct {
	BusinessName string
	Err          error
}

func (e *RecordEmissionError) Error() string {
	return fmt.Sprintf("business %q: %v", e.BusinessName, e.Err)
}

func (e *RecordEmissionError) Unwrap() error { return e.Err }

// TransactionFatalError indicates an infrastructure-level failure during
// execution. Nothing from the batch is committed when it is returned.
type TransactionFatalError struct {
	Err error
}

func (e *TransactionFatalError) Error() string {
	return fmt.Sprintf("batch transaction aborted: %v", e.Err)
}

func (e *TransactionFatalError) Unwrap() error { return e.Err }
