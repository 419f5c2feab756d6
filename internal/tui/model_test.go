package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

func typeInto(m *Model, field int, text string) {
	m.setFocus(field)
	m.inputs[field].SetValue("")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestEditsRecomputeStatus(t *testing.T) {
	m := NewModel(reference.Default(), model.Male, nil)
	typeInto(m, fieldAge, "12 months")
	typeInto(m, fieldMUAC, "11.0")
	if m.status.MUACStatus != model.MUACSevere {
		t.Fatalf("expected SAM after typing muac, got %q", m.status.MUACStatus)
	}
	typeInto(m, fieldWeight, "9.5")
	if m.status.WFA != model.WFANormal {
		t.Fatalf("expected normal weight-for-age, got %q", m.status.WFA)
	}
	if m.age.Months != 12 {
		t.Fatalf("expected parsed age of 12 months, got %v", m.age.Months)
	}
}

func TestInitialStatusShownBeforeEdits(t *testing.T) {
	seed := model.NutritionalStatus{WFA: model.WFAOverweight}
	m := NewModel(reference.Default(), model.Female, &seed)
	if m.status.WFA != model.WFAOverweight {
		t.Fatalf("expected seeded status, got %+v", m.status)
	}
	if m.inputs[fieldGender].Value() != "Female" {
		t.Fatalf("expected default gender in form, got %q", m.inputs[fieldGender].Value())
	}
}

func TestInvalidFieldShowsError(t *testing.T) {
	m := NewModel(reference.Default(), model.Male, nil)
	typeInto(m, fieldHeight, "tall")
	if m.fieldErrors[fieldHeight] == "" {
		t.Fatalf("expected height error")
	}
	if m.status.LHFA != model.LHFAUnclassified {
		t.Fatalf("expected invalid height to be unclassified, got %q", m.status.LHFA)
	}
	if !strings.Contains(m.renderForm(), "height must be a finite number") {
		t.Fatalf("expected error in form view")
	}
}

func TestNonFiniteFieldShowsError(t *testing.T) {
	m := NewModel(reference.Default(), model.Male, nil)
	typeInto(m, fieldAge, "12 months")
	typeInto(m, fieldWeight, "NaN")
	typeInto(m, fieldMUAC, "inf")
	if m.status.WFA != model.WFAUnclassified || m.status.MUACStatus != model.MUACUnclassified {
		t.Fatalf("expected non-finite values to be unclassified, got %+v", m.status)
	}
	if m.fieldErrors[fieldWeight] == "" || m.fieldErrors[fieldMUAC] == "" {
		t.Fatalf("expected field errors, got %v", m.fieldErrors)
	}
}

func TestFocusCycles(t *testing.T) {
	m := NewModel(reference.Default(), model.Male, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldGender {
		t.Fatalf("expected focus to wrap to gender, got %d", m.focus)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldWeight {
		t.Fatalf("expected focus to wrap to weight, got %d", m.focus)
	}
}

func TestRenderCardsShowsLabels(t *testing.T) {
	m := NewModel(reference.Default(), model.Male, nil)
	typeInto(m, fieldAge, "30 months")
	typeInto(m, fieldMUAC, "12.0")
	out := m.renderCards()
	for _, want := range []string{"Weight-for-Age", "MUAC", "MAM Moderate Acute Malnutrition"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in cards:\n%s", want, out)
		}
	}
	if !strings.Contains(m.renderAgeSummary(), "MUAC 12 cm") {
		t.Fatalf("unexpected age summary: %s", m.renderAgeSummary())
	}
}

func TestCutoffRowsFollowInput(t *testing.T) {
	m := NewModel(reference.Default(), model.Male, nil)
	if !strings.Contains(m.renderCutoffs(), "Enter an age") {
		t.Fatalf("expected hint before any input")
	}
	typeInto(m, fieldAge, "12 months")
	typeInto(m, fieldHeight, "75.2")
	rows := m.cutoffs.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected three reference rows, got %d", len(rows))
	}
	if rows[0][1] != "12 mo" || !strings.Contains(rows[0][2], "SUW <= 6.8") {
		t.Fatalf("unexpected wfa row: %v", rows[0])
	}
	if rows[2][1] != "75.0 cm" {
		t.Fatalf("expected 75.0 cm wfh row, got %v", rows[2])
	}
}

func TestCutoffRowsSkipOutOfRangeHeight(t *testing.T) {
	rows := cutoffRows(reference.Default(), model.Female, 80, 50)
	if len(rows) != 0 {
		t.Fatalf("expected no rows past the tables, got %v", rows)
	}
}
