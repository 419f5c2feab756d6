// Package tui provides the Bubble Tea nutritional status calculator.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/nutristat/internal/age"
	"github.com/verte-zerg/nutristat/internal/classify"
	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
	"github.com/verte-zerg/nutristat/internal/report"
)

const (
	fieldWeight = iota
	fieldHeight
	fieldAge
	fieldMUAC
	fieldGender
	fieldCount
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

var severityColors = map[model.Severity]lipgloss.Color{
	model.SeverityUnclassified: lipgloss.Color("#8C8C8C"),
	model.SeverityNormal:       lipgloss.Color("#52C41A"),
	model.SeverityModerate:     lipgloss.Color("#C89A3A"),
	model.SeveritySevere:       lipgloss.Color("#FF4D4F"),
}

// Model implements the Bubble Tea calculator UI.
type Model struct {
	tables   *reference.Tables
	composer *classify.Composer
	status   model.NutritionalStatus
	age      model.AgeSpec
	cutoffs  table.Model

	inputs      []textinput.Model
	focus       int
	fieldErrors map[int]string

	width  int
	height int
}

// NewModel constructs a calculator. initial seeds the status cards until the
// first edit; it may be nil.
func NewModel(tables *reference.Tables, gender model.Gender, initial *model.NutritionalStatus) *Model {
	m := &Model{
		tables:      tables,
		cutoffs:     buildCutoffTable(),
		fieldErrors: map[int]string{},
	}
	m.composer = classify.NewComposer(tables, initial, func(s model.NutritionalStatus) {
		m.status = s
	})
	m.status = m.composer.Status()
	m.inputs = []textinput.Model{
		newInput("Weight (kg): ", "9.5"),
		newInput("Height (cm): ", "75"),
		newInput("Age: ", "2 years 3 months"),
		newInput("MUAC (cm): ", "12.5"),
		newInput("Gender: ", "Male / Female"),
	}
	m.inputs[fieldGender].SetValue(string(gender.Normalize()))
	m.setFocus(0)
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 32
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown, tea.KeyEnter:
			return m, m.setFocus(m.focus + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus(m.focus - 1)
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.recompute()
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(idx int) tea.Cmd {
	if idx < 0 {
		idx = fieldCount - 1
	}
	if idx >= fieldCount {
		idx = 0
	}
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// recompute reads every field and hands the result to the composer, which
// only emits when something actually changed.
func (m *Model) recompute() {
	m.fieldErrors = map[int]string{}
	ageText := strings.TrimSpace(m.inputs[fieldAge].Value())
	in := model.Input{
		Weight: m.measure(fieldWeight, "weight"),
		Height: m.measure(fieldHeight, "height"),
		MUAC:   m.measure(fieldMUAC, "MUAC"),
		Age:    ageText,
		Gender: model.Male,
	}
	gender, err := model.ParseGender(m.inputs[fieldGender].Value())
	if err != nil {
		m.fieldErrors[fieldGender] = "gender must be Male or Female"
	} else {
		in.Gender = gender
	}
	m.age = age.Parse(ageText)
	m.composer.Update(in)

	height, _ := model.Measure(in.Height)
	m.cutoffs.SetRows(cutoffRows(m.tables, in.Gender, m.age.Months, height))
}

func (m *Model) measure(field int, name string) *float64 {
	v, err := model.ParseMeasure(m.inputs[field].Value())
	if err != nil {
		m.fieldErrors[field] = fmt.Sprintf("%s must be a finite number", name)
		return nil
	}
	return v
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		titleStyle.Render("Nutritional Status Calculator"),
		m.renderForm(),
		m.renderCards(),
		headerStyle.Render(m.renderAgeSummary()),
		m.renderCutoffs(),
		headerStyle.Render("tab/shift+tab: next field  esc: quit"),
	}
	content := strings.Join(sections, "\n\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderForm() string {
	lines := make([]string, 0, len(m.inputs)+len(m.fieldErrors))
	for i, input := range m.inputs {
		lines = append(lines, input.View())
		if msg, ok := m.fieldErrors[i]; ok {
			lines = append(lines, errorStyle.Render("  "+msg))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCards() string {
	lines := report.Lines(m.status)
	cards := make([]string, 0, len(lines))
	for _, line := range lines {
		cards = append(cards, statusCard(line))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statusCard(line report.Line) string {
	valueStyle := lipgloss.NewStyle().Foreground(severityColors[line.Severity]).Bold(true)
	code := line.Code
	if code == "" {
		code = "-"
	}
	body := cardTitleStyle.Render(line.Indicator) + "\n" + valueStyle.Render(code+" "+line.Label)
	return cardStyle.Render(body)
}

func (m *Model) renderCutoffs() string {
	if len(m.cutoffs.Rows()) == 0 {
		return headerStyle.Render("Enter an age or height to see reference rows.")
	}
	return m.cutoffs.View()
}

func (m *Model) renderAgeSummary() string {
	summary := fmt.Sprintf("Age: %s months · %d days", report.FormatNumber(m.age.Months), m.age.TotalDays)
	if m.status.MUAC != nil {
		summary += fmt.Sprintf(" · MUAC %s cm", report.FormatNumber(*m.status.MUAC))
	}
	return summary
}
