// Package batch classifies rosters of children read from CSV.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/nutristat/internal/age"
	"github.com/verte-zerg/nutristat/internal/classify"
	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

// Column names recognised in the roster header.
const (
	ColID     = "id"
	ColWeight = "weight"
	ColHeight = "height"
	ColAge    = "age"
	ColMUAC   = "muac"
	ColGender = "gender"
)

// ResultColumns are appended to the roster on output.
var ResultColumns = []string{"wfa", "lhfa", "wfh", "muac_status"}

// Roster is a parsed CSV roster. Unknown columns are kept for output.
type Roster struct {
	Header  []string
	Records [][]string
	columns map[string]int
}

// Result is the classification of one roster record.
type Result struct {
	Line     int                     `json:"line"`
	ID       string                  `json:"id,omitempty"`
	Months   float64                 `json:"age_months"`
	Days     int                     `json:"age_days"`
	Gender   model.Gender            `json:"gender"`
	Status   model.NutritionalStatus `json:"status"`
	Warnings []string                `json:"warnings,omitempty"`
}

// Summary counts what a run produced.
type Summary struct {
	Rows     int
	Warnings int
	Severe   int
	Moderate int
}

// Read parses a roster with a header row.
func Read(r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("roster is empty")
		}
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}
	roster := &Roster{Header: header, columns: map[string]int{}}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := roster.columns[key]; dup {
			return nil, fmt.Errorf("duplicate roster column %q", name)
		}
		roster.columns[key] = i
	}
	if !roster.hasAny(ColWeight, ColHeight, ColMUAC) {
		return nil, fmt.Errorf("roster needs at least one of %s, %s or %s columns", ColWeight, ColHeight, ColMUAC)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	roster.Records = records
	return roster, nil
}

func (r *Roster) hasAny(names ...string) bool {
	for _, name := range names {
		if _, ok := r.columns[name]; ok {
			return true
		}
	}
	return false
}

func (r *Roster) cell(record []string, name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Run classifies every record. Bad cells are logged and treated as missing.
func Run(roster *Roster, tables *reference.Tables, defaultGender model.Gender, logger *zap.Logger) ([]Result, Summary) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]Result, 0, len(roster.Records))
	summary := Summary{Rows: len(roster.Records)}
	for i, record := range roster.Records {
		// Line numbers are 1-based and count the header.
		line := i + 2
		in, warnings := roster.input(record, defaultGender)
		for _, warning := range warnings {
			logger.Warn("roster cell ignored", zap.Int("line", line), zap.String("reason", warning))
		}
		status := classify.Classify(in, tables)
		ageSpec := age.Parse(in.Age)
		result := Result{
			Line:     line,
			ID:       roster.cell(record, ColID),
			Months:   ageSpec.Months,
			Days:     ageSpec.TotalDays,
			Gender:   in.Gender,
			Status:   status,
			Warnings: warnings,
		}
		summary.Warnings += len(warnings)
		switch worstSeverity(status) {
		case model.SeveritySevere:
			summary.Severe++
		case model.SeverityModerate:
			summary.Moderate++
		}
		results = append(results, result)
	}
	logger.Debug("roster classified",
		zap.Int("rows", summary.Rows),
		zap.Int("warnings", summary.Warnings),
		zap.Int("severe", summary.Severe),
		zap.Int("moderate", summary.Moderate))
	return results, summary
}

func (r *Roster) input(record []string, defaultGender model.Gender) (model.Input, []string) {
	var warnings []string
	measure := func(name string) *float64 {
		raw := r.cell(record, name)
		v, err := model.ParseMeasure(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %s %q", name, raw))
			return nil
		}
		return v
	}
	in := model.Input{
		Weight: measure(ColWeight),
		Height: measure(ColHeight),
		MUAC:   measure(ColMUAC),
		Age:    r.cell(record, ColAge),
		Gender: defaultGender.Normalize(),
	}
	if raw := r.cell(record, ColGender); raw != "" {
		gender, err := model.ParseGender(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid gender %q", raw))
		} else {
			in.Gender = gender
		}
	}
	return in, warnings
}

func worstSeverity(status model.NutritionalStatus) model.Severity {
	worst := model.SeverityUnclassified
	for _, s := range []model.Severity{
		status.WFA.Severity(),
		status.LHFA.Severity(),
		status.WFH.Severity(),
		status.MUACStatus.Severity(),
	} {
		if s > worst {
			worst = s
		}
	}
	return worst
}
