package batch

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderScript turns a batch into a standalone SQL document, the offline
// artifact written next to the normalized-records export. Every literal is
// escaped; child rows reference the parent by place_id because the generated
// key does not exist outside a live transaction. Savepoints reproduce the
// per-business failure boundary for anyone replaying the file by hand.
func RenderScript(b Batch) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "-- batch run %s\n", b.RunID)
	fmt.Fprintf(&sb, "-- %d businesses\n", len(b.Groups))
	sb.WriteString("BEGIN;\n\n")

	for i, group := range b.Groups {
		fmt.Fprintf(&sb, "-- business: %s\n", sanitizeComment(group.Name))
		fmt.Fprintf(&sb, "SAVEPOINT business_%d;\n", i)
		for _, stmt := range group.Statements {
			sb.WriteString(renderStatement(stmt, group.PlaceID))
			sb.WriteString(";\n")
		}
		fmt.Fprintf(&sb, "RELEASE SAVEPOINT business_%d;\n\n", i)
	}

	sb.WriteString("COMMIT;\n")
	return sb.String()
}

// renderStatement substitutes placeholders with rendered literals, highest
// index first so $1 cannot clobber $10.
func renderStatement(stmt Statement, placeID string) string {
	sql := stmt.SQL
	for i := len(stmt.Args); i >= 1; i-- {
		placeholder := "$" + strconv.Itoa(i)
		sql = strings.ReplaceAll(sql, placeholder, renderLiteral(stmt.Args[i-1], placeID))
	}
	sql = strings.TrimSuffix(strings.TrimSpace(sql), "RETURNING business_id")
	return strings.TrimSpace(sql)
}

func renderLiteral(arg any, placeID string) string {
	switch v := arg.(type) {
	case nil:
		return "NULL"
	case ParentKey:
		return fmt.Sprintf("(SELECT business_id FROM recycling.businesses WHERE place_id = '%s')", EscapeLiteral(placeID))
	case string:
		return "'" + EscapeLiteral(v) + "'"
	case *string:
		if v == nil {
			return "NULL"
		}
		return "'" + EscapeLiteral(*v) + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *float64:
		if v == nil {
			return "NULL"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	default:
		return "'" + EscapeLiteral(fmt.Sprint(v)) + "'"
	}
}

// sanitizeComment keeps business names from breaking out of a line comment.
func sanitizeComment(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	return strings.ReplaceAll(name, "\r", " ")
}
