package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"bazi/internal/analysis"
	"bazi/internal/batch"
	"bazi/internal/terms"
)

const (
	fieldDate = iota
	fieldTime
	fieldLongitude
	fieldGender
	fieldCount
)

var promptLabels = [fieldCount]string{
	"出生日期 (YYYY-MM-DD)",
	"出生时间 (HH:MM)",
	"经度 (可空, 如 115.45 或 E115°26'58\")",
	"性别 (male/female, 可空)",
}

// promptModel walks the user through the birth-data fields.
type promptModel struct {
	inputs  [fieldCount]textinput.Model
	focused int
	err     error
	done    bool
	aborted bool

	labelStyle lipgloss.Style
	errStyle   lipgloss.Style
}

func newPromptModel() promptModel {
	m := promptModel{
		labelStyle: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		errStyle:   lipgloss.NewStyle().Foreground(colorBad),
	}
	placeholders := [fieldCount]string{"1986-04-06", "00:20", "", ""}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 32
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if err := m.validateFocused(); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			if m.focused == fieldCount-1 {
				m.done = true
				return m, tea.Quit
			}
			m.inputs[m.focused].Blur()
			m.focused++
			m.inputs[m.focused].Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.labelStyle.Render("八字排盘") + "\n\n")
	for i := 0; i <= m.focused; i++ {
		sb.WriteString(promptLabels[i] + "\n")
		sb.WriteString(m.inputs[i].View() + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + m.errStyle.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n(Enter 下一项 · Esc 退出)\n")
	return sb.String()
}

func (m promptModel) validateFocused() error {
	v := strings.TrimSpace(m.inputs[m.focused].Value())
	switch m.focused {
	case fieldDate:
		if _, _, _, err := splitDate(v); err != nil {
			return err
		}
	case fieldTime:
		if _, _, err := splitClock(v); err != nil {
			return err
		}
	}
	return nil
}

func splitDate(s string) (y, mo, d int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("日期格式应为 YYYY-MM-DD")
	}
	nums := make([]int, 3)
	for i, p := range parts {
		nums[i], err = strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("日期格式应为 YYYY-MM-DD")
		}
	}
	return nums[0], nums[1], nums[2], nil
}

func splitClock(s string) (h, mi int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("时间格式应为 HH:MM")
	}
	h, err = strconv.Atoi(parts[0])
	if err == nil {
		mi, err = strconv.Atoi(parts[1])
	}
	if err != nil {
		return 0, 0, fmt.Errorf("时间格式应为 HH:MM")
	}
	return h, mi, nil
}

// runPrompt collects birth data interactively and prints the full report.
func runPrompt(cmd *cobra.Command) error {
	final, err := tea.NewProgram(newPromptModel()).Run()
	if err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok || m.aborted || !m.done {
		return nil
	}

	y, mo, d, err := splitDate(strings.TrimSpace(m.inputs[fieldDate].Value()))
	if err != nil {
		return err
	}
	h, mi, err := splitClock(strings.TrimSpace(m.inputs[fieldTime].Value()))
	if err != nil {
		return err
	}

	lon := strings.TrimSpace(m.inputs[fieldLongitude].Value())
	q := batch.Query{
		Year: y, Month: mo, Day: d, Hour: h, Minute: mi,
		TrueSolar: lon != "",
		Longitude: lon,
		Scope:     cfg.TrueSolarScope,
		Gender:    strings.TrimSpace(m.inputs[fieldGender].Value()),
		Sect:      cfg.Sect,
	}
	res, err := batch.Evaluate(q, cfg.LuckPillars)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := newRenderer(pretty)

	prev, next, err := terms.BoundingSectional(res.Resolved)
	if err != nil {
		return err
	}
	civil := res.Resolved
	r.Chart(out, res.Resolved, civil, res.Chart, prev, next)
	r.Hidden(out, res.Chart)
	r.Gods(out, res.Chart, analysis.Gods(res.Chart))
	r.Strength(out, res.Verdict, res.Favorable)
	if res.Luck != nil {
		r.Luck(out, *res.Luck, cfg.AnnualYears, res.Resolved.Year())
	}
	return nil
}
