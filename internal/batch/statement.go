package batch

import (
	"strings"

	"github.com/google/uuid"
)

// Statement is a single parameterized insert. SQL uses pgx-style positional
// placeholders; Args may contain a ParentKey sentinel that the executor
// resolves to the generated parent key at run time.
type Statement struct {
	Table string
	SQL   string
	Args  []any
}

// ParentKey marks an argument that must be replaced with the real generated
// key of the group's parent row. The ref is the within-batch synthetic
// identifier assigned during normalization.
type ParentKey struct {
	Ref int
}

// Group is the ordered statement set for one business. The first statement
// inserts the parent row and must return its generated key.
type Group struct {
	Ref        int
	Name       string
	PlaceID    string
	Statements []Statement
}

// Batch is the finalized multi-business emission handed to an executor.
type Batch struct {
	RunID  uuid.UUID
	Groups []Group
}

// RecordError is one soft failure in the per-record ledger.
type RecordError struct {
	BusinessName string `json:"business_name"`
	Message      string `json:"message"`
}

// Result reports the outcome of executing a batch: how many businesses
// committed and the ledger of per-record failures that did not abort the
// transaction.
type Result struct {
	RunID     uuid.UUID     `json:"run_id"`
	Succeeded int           `json:"succeeded"`
	Ledger    []RecordError `json:"ledger"`
}

// EscapeLiteral doubles interior single quotes so business-controlled text
// can be rendered into a SQL document. Statement execution never relies on
// this; it always goes through parameter binding.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
