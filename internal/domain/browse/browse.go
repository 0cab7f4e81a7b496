// Package browse serves the raw-table views: the most recent rows of each
// core table, as JSON or as a CSV download. Both formats come from the same
// query, so an export always matches what was on screen.
package browse

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const browseLimit = 100

// entitySpec fixes the column list and sort order per entity. Entities not
// in the map do not exist; nothing caller-supplied ever reaches the SQL.
type entitySpec struct {
	table    string
	columns  []string
	orderCol string
}

var entities = map[string]entitySpec{
	"studies": {
		table: "studies",
		columns: []string{"study_id", "study_name", "study_number",
			"principal_investigator", "study_phase", "study_type",
			"target_enrollment", "current_enrollment", "study_status",
			"created_date"},
		orderCol: "created_date",
	},
	"participants": {
		table: "participants",
		columns: []string{"participant_id", "study_id", "participant_number",
			"enrollment_date", "consent_date", "demographic_group",
			"inclusion_criteria_met", "exclusion_criteria_met",
			"participant_status", "created_date"},
		orderCol: "enrollment_date",
	},
	"observations": {
		table: "observations",
		columns: []string{"observation_id", "study_id", "participant_id",
			"observation_date", "visit_number", "measurement_name",
			"measurement_value", "measurement_unit", "created_date"},
		orderCol: "observation_date",
	},
	"notes": {
		table: "research_notes",
		columns: []string{"note_id", "study_id", "note_type", "note_title",
			"note_text", "note_priority", "note_date", "created_by",
			"created_date"},
		orderCol: "note_date",
	},
	"findings": {
		table: "findings",
		columns: []string{"finding_id", "study_id", "finding_type",
			"finding_description", "severity", "relationship_to_intervention",
			"action_taken", "outcome", "sae_reported", "created_date"},
		orderCol: "created_date",
	},
}

// Entities returns the browsable entity names, sorted.
func Entities() []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table is a browse result: ordered column names and stringified row values.
type Table struct {
	Entity  string     `json:"entity"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// Browse returns the newest rows of the named entity.
func (s *Service) Browse(ctx context.Context, entity string) (*Table, error) {
	spec, ok := entities[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity: %s", entity)
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT %d`,
		strings.Join(spec.columns, ", "), spec.table, spec.orderCol, browseLimit)

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("browse %s: %w", entity, err)
	}
	defer rows.Close()

	table := &Table{Entity: entity, Columns: spec.columns, Rows: [][]string{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s row: %w", entity, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

// formatValue renders a column value for display and export. NULLs become
// empty cells; dates keep their wire form.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
