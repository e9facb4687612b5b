package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wirebuf/wirebuf"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectorModel struct {
	cfg      wirebuf.Config
	schemaIn textinput.Model
	dataIn   textinput.Model
	focusIdx int
	decoded  []decodedField
	decodeEr error
	total    int
}

func newInspectorModel(cfg wirebuf.Config) *inspectorModel {
	schemaIn := textinput.New()
	schemaIn.Placeholder = "u32,string,f32,quat"
	schemaIn.Prompt = "schema: "
	schemaIn.Width = 60
	schemaIn.Focus()

	dataIn := textinput.New()
	dataIn.Placeholder = "hex bytes"
	dataIn.Prompt = "data:   "
	dataIn.Width = 60

	return &inspectorModel{cfg: cfg, schemaIn: schemaIn, dataIn: dataIn}
}

func (m *inspectorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "enter":
			if m.focusIdx == 0 {
				m.schemaIn.Blur()
				m.dataIn.Focus()
				m.focusIdx = 1
			} else {
				m.dataIn.Blur()
				m.schemaIn.Focus()
				m.focusIdx = 0
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.schemaIn, cmd = m.schemaIn.Update(msg)
	cmds = append(cmds, cmd)
	m.dataIn, cmd = m.dataIn.Update(msg)
	cmds = append(cmds, cmd)

	m.reDecode()
	return m, tea.Batch(cmds...)
}

// reDecode refreshes the field list from the current inputs. Errors are
// shown inline; partial decodes keep whatever fields made it.
func (m *inspectorModel) reDecode() {
	m.decoded = nil
	m.decodeEr = nil
	m.total = 0

	schemaStr := strings.TrimSpace(m.schemaIn.Value())
	dataStr := strings.TrimSpace(m.dataIn.Value())
	if schemaStr == "" || dataStr == "" {
		return
	}

	fields, err := parseSchema(schemaStr)
	if err != nil {
		m.decodeEr = err
		return
	}
	payload, err := decodeInput(dataStr, false)
	if err != nil {
		m.decodeEr = err
		return
	}
	m.total = len(payload)
	m.decoded, m.decodeEr = decodePayload(payload, fields, m.cfg)
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wireview"))
	mode := "uncompressed"
	if m.cfg.UseCompression {
		mode = fmt.Sprintf("compressed dp=%d bits=%d", m.cfg.DecimalPlaces, m.cfg.BitsPerComponent)
	}
	b.WriteString(" " + helpStyle.Render(mode))
	b.WriteString("\n\n")

	b.WriteString(m.schemaIn.View())
	b.WriteString("\n")
	b.WriteString(m.dataIn.View())
	b.WriteString("\n\n")

	for _, f := range m.decoded {
		b.WriteString(offsetStyle.Render(fmt.Sprintf("%4d %-8s ", f.offset, byteRange(f.size))))
		b.WriteString(kindStyle.Render(fmt.Sprintf("%-7s", f.kind)))
		b.WriteString(valueStyle.Render(f.value))
		b.WriteString("\n")
	}
	if m.decodeEr != nil {
		b.WriteString(errorStyle.Render(m.decodeEr.Error()))
		b.WriteString("\n")
	} else if len(m.decoded) > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d fields, %d bytes", len(m.decoded), m.total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch field • esc quit"))
	return b.String()
}

func runInteractive(cfg wirebuf.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInspectorModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
