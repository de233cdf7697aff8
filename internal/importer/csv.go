// Package importer loads workout history from CSV exports. Each row is one
// exercise performed on a date; rows sharing a date and schema are grouped
// into a single session. A SQLite state database remembers which files were
// already imported so re-running the importer is cheap and idempotent.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// defaultColumns is the column order assumed when the file has no header row.
var defaultColumns = []string{"date", "schema", "exercise", "musclegroup", "sets", "reps", "weight", "durationminutes"}

const (
	defaultSetCount = 3
	defaultReps     = 12
	importedMET     = 5
)

// ParseResult is the outcome of parsing one CSV document.
type ParseResult struct {
	Sessions    []models.WorkoutSession
	RowsParsed  int
	RowsSkipped int
}

// parsedRow is a raw CSV row keyed by normalized column name.
type parsedRow map[string]string

// ParseCSV parses a CSV export into grouped sessions. The first line is
// treated as a header when it names both a date and a schema column;
// otherwise the default column order applies. Rows missing a date, schema or
// exercise are skipped, not fatal.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	return parseCSVAt(r, time.Now().UnixMilli())
}

// parseCSVAt is ParseCSV with an explicit exercise ID seed, so tests get
// stable IDs.
func parseCSVAt(r io.Reader, idSeed int64) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return &ParseResult{}, nil
	}

	columns := defaultColumns
	if hasHeader(records[0]) {
		columns = make([]string, len(records[0]))
		for i, c := range records[0] {
			columns[i] = strings.ToLower(strings.TrimSpace(c))
		}
		records = records[1:]
	}

	result := &ParseResult{}
	grouped := map[string]*models.WorkoutSession{}
	var order []string
	exerciseID := idSeed

	for _, record := range records {
		row := parsedRow{}
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		if row["date"] == "" || row["schema"] == "" || row["exercise"] == "" {
			result.RowsSkipped++
			continue
		}
		result.RowsParsed++

		date := normalizeDate(row["date"])
		schemaName := row["schema"]
		key := date + "__" + schemaName

		session, ok := grouped[key]
		if !ok {
			session = importedSession(key, date, schemaName, row["durationminutes"])
			grouped[key] = session
			order = append(order, key)
		}

		session.Exercises = append(session.Exercises, importedExercise(row, exerciseID))
		exerciseID++
	}

	for _, key := range order {
		result.Sessions = append(result.Sessions, *grouped[key])
	}
	sort.Slice(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].Date < result.Sessions[j].Date
	})
	return result, nil
}

// hasHeader reports whether the first record names the date and schema
// columns.
func hasHeader(record []string) bool {
	var hasDate, hasSchema bool
	for _, c := range record {
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "date":
			hasDate = true
		case "schema":
			hasSchema = true
		}
	}
	return hasDate && hasSchema
}

// importedSession builds the session shell for a date+schema group. Imported
// sessions are marked completed so they count toward stats; the start time is
// pinned at 08:00 local with the end derived from the optional duration.
func importedSession(key, date, schemaName, durationStr string) *models.WorkoutSession {
	session := &models.WorkoutSession{
		ID:         "import-" + key,
		Date:       date,
		SchemaID:   toSlug(schemaName),
		SchemaName: schemaName,
		Completed:  true,
	}
	if session.SchemaID == "" {
		session.SchemaID = "imported"
	}

	if day, ok := models.ParseLocalDate(date); ok {
		start := day.Add(8 * time.Hour)
		session.StartTime = &start
		if minutes, err := strconv.Atoi(durationStr); err == nil && minutes > 0 {
			end := start.Add(time.Duration(minutes) * time.Minute)
			session.EndTime = &end
		}
	}
	return session
}

// importedExercise builds one exercise from a row, expanding the reps and
// weight lists to the set count.
func importedExercise(row parsedRow, exerciseID int64) models.WorkoutExercise {
	setCount := defaultSetCount
	if n, err := strconv.Atoi(row["sets"]); err == nil && n > 0 {
		setCount = n
	}
	reps := parseNumberList(row["reps"], setCount, defaultReps)
	weights := parseNumberList(row["weight"], setCount, 0)

	sets := make([]models.ExerciseSet, setCount)
	for i := range sets {
		sets[i] = models.ExerciseSet{
			SetNumber:  i + 1,
			Reps:       int(reps[i]),
			Weight:     weights[i],
			Completed:  true,
			Difficulty: models.DifficultyGoed,
		}
	}

	muscleGroup := row["musclegroup"]
	if muscleGroup == "" {
		muscleGroup = "Onbekend"
	}

	return models.WorkoutExercise{
		ExerciseID:  int(exerciseID),
		Name:        row["exercise"],
		MuscleGroup: muscleGroup,
		MET:         importedMET,
		Sets:        sets,
		Completed:   true,
	}
}

// parseNumberList expands a |- or ;-separated list to count entries. Missing
// entries repeat the last given value; an empty or unparseable list yields
// the fallback throughout.
func parseNumberList(value string, count int, fallback float64) []float64 {
	out := make([]float64, count)
	var parts []float64
	for _, p := range strings.FieldsFunc(value, func(r rune) bool { return r == '|' || r == ';' }) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			parts = append(parts, v)
		}
	}
	for i := 0; i < count; i++ {
		switch {
		case i < len(parts):
			out[i] = parts[i]
		case len(parts) > 0:
			out[i] = parts[len(parts)-1]
		default:
			out[i] = fallback
		}
	}
	return out
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// toSlug lowercases a schema name into a URL-safe identifier.
func toSlug(text string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// normalizeDate accepts DD-MM-YYYY and YYYY-MM-DD, returning YYYY-MM-DD.
// Anything else passes through unchanged and fails later validation.
func normalizeDate(dateStr string) string {
	trimmed := strings.TrimSpace(dateStr)
	parts := strings.Split(trimmed, "-")
	if len(parts) != 3 {
		return trimmed
	}
	if len(parts[0]) <= 2 && len(parts[1]) <= 2 && len(parts[2]) == 4 {
		return parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
	}
	if len(parts[0]) == 4 {
		return parts[0] + "-" + pad2(parts[1]) + "-" + pad2(parts[2])
	}
	return trimmed
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
