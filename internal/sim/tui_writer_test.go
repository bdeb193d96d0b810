package sim

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vitalsim/internal/config"
	"vitalsim/internal/vitals"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	if err := w.Write(testRow()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := p.msgs[0].(logMsg); !ok {
		t.Fatalf("expected logMsg, got %T", p.msgs[0])
	}
	if _, ok := p.msgs[1].(vitalsMsg); !ok {
		t.Fatalf("expected vitalsMsg, got %T", p.msgs[1])
	}
}

func TestTUIModel_HeaderShowsLatestVitals(t *testing.T) {
	m := newTUIModel(config.Default())
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = mi.(tuiModel)

	row := testRow()
	row.HeartRate = 112.3
	row.Status = "critical"
	mi, _ = m.Update(vitalsMsg{row})
	m = mi.(tuiModel)

	header := m.renderHeader()
	if !strings.Contains(header, "112.3") {
		t.Fatalf("expected heart rate in header, got %q", header)
	}
	if !strings.Contains(header, "critical") {
		t.Fatalf("expected status in header, got %q", header)
	}
}

func TestTUIModel_LogLinesCapped(t *testing.T) {
	m := newTUIModel(config.Default())
	for i := 0; i < maxTUILogLines+50; i++ {
		mi, _ := m.Update(logMsg{line: "tick"})
		m = mi.(tuiModel)
	}
	if len(m.logs) != maxTUILogLines {
		t.Fatalf("expected capped log buffer, got %d", len(m.logs))
	}
}

func TestTUIModel_QuitKeys(t *testing.T) {
	m := newTUIModel(config.Default())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command for q")
	}
}

func TestTUIModel_AcceptsRows(t *testing.T) {
	m := newTUIModel(config.Default())
	row := vitals.VitalsRow{MonitorID: "m1", Tick: 1}
	mi, _ := m.Update(vitalsMsg{row})
	m = mi.(tuiModel)
	if !m.haveRow || m.latest.Tick != 1 {
		t.Fatalf("model did not record row: %+v", m.latest)
	}
}
