package sim

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"vitalsim/internal/config"
	"vitalsim/internal/risk"
	"vitalsim/internal/vitals"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a formatted log line for the viewport.
type logMsg struct{ line string }

// vitalsMsg carries the latest row for the live panel.
type vitalsMsg struct{ vitals.VitalsRow }

const maxTUILogLines = 500

// TUIWriter renders vitals using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.MonitorConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements VitalsWriter.
func (w *TUIWriter) Write(row vitals.VitalsRow) error {
	statusColor := colorGreen
	switch risk.Status(row.Status) {
	case risk.StatusCritical:
		statusColor = colorRed
	case risk.StatusModerate:
		statusColor = colorYellow
	}
	line := fmt.Sprintf("%s[%s]%s %stick=%d%s %sphase=%s%s %shr=%.1f%s %sbp=%.0f%s %sspo2=%.1f%s %sscore=%d%s %s%s%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.Tick, colorReset,
		colorMagenta, row.Phase, colorReset,
		colorGreen, row.HeartRate, colorReset,
		colorYellow, row.BPSystolic, colorReset,
		colorCyan, row.SpO2, colorReset,
		colorMagenta, row.Score, colorReset,
		statusColor, row.Status, colorReset)
	w.program.Send(logMsg{line: line})
	w.program.Send(vitalsMsg{row})
	return nil
}

// WriteBatch outputs multiple vitals rows.
func (w *TUIWriter) WriteBatch(rows []vitals.VitalsRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	tuiPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tuiNormalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	tuiModerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	tuiCritStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

type tuiModel struct {
	cfg          *config.MonitorConfig
	table        table.Model
	vp           viewport.Model
	logs         []string
	latest       vitals.VitalsRow
	haveRow      bool
	wrap         bool
	autoscroll   bool
	headerHeight int
	width        int
	height       int
}

func newTUIModel(cfg *config.MonitorConfig) tuiModel {
	cols := []table.Column{
		{Title: "Config", Width: 24},
		{Title: "Value", Width: 12},
	}
	rows := []table.Row{
		{"HR Baseline (BPM)", fmt.Sprintf("%.0f", cfg.Patient.HeartRateBaseline)},
		{"SpO2 Baseline (%)", fmt.Sprintf("%.1f", cfg.Patient.SpO2Baseline)},
		{"BP Systolic (mmHg)", fmt.Sprintf("%.0f", cfg.Patient.BPSystolic)},
		{"Deterioration Onset", fmt.Sprintf("tick %d", cfg.Deterioration.OnsetTick)},
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.headerHeight = lipgloss.Height(m.renderHeader())
		if h := m.height - m.headerHeight; h > 0 {
			m.vp.Height = h
		}
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "a":
			m.autoscroll = !m.autoscroll
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxTUILogLines {
			m.logs = m.logs[len(m.logs)-maxTUILogLines:]
		}
		m.refreshViewport()
	case vitalsMsg:
		m.latest = msg.VitalsRow
		m.haveRow = true
		m.headerHeight = lipgloss.Height(m.renderHeader())
		if h := m.height - m.headerHeight; h > 0 {
			m.vp.Height = h
		}
	}
	return m, nil
}

func (m *tuiModel) refreshViewport() {
	content := ""
	for i, l := range m.logs {
		if i > 0 {
			content += "\n"
		}
		if m.wrap && m.vp.Width > 0 {
			l = wordwrap.String(l, m.vp.Width)
		}
		content += l
	}
	m.vp.SetContent(content)
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) renderHeader() string {
	title := tuiTitleStyle.Render("vitalsim :: live patient monitor")
	panel := "waiting for first tick..."
	if m.haveRow {
		style := tuiNormalStyle
		switch risk.Status(m.latest.Status) {
		case risk.StatusCritical:
			style = tuiCritStyle
		case risk.StatusModerate:
			style = tuiModerStyle
		}
		panel = fmt.Sprintf("HR %6.1f BPM   BP %3.0f mmHg   SpO2 %5.1f %%   score %3d   %s",
			m.latest.HeartRate, m.latest.BPSystolic, m.latest.SpO2,
			m.latest.Score, style.Render(m.latest.Status))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.table.View(),
		tuiPanelStyle.Render(panel),
	)
}

func (m tuiModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.vp.View())
}
