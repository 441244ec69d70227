package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lexrag/internal/domain"
)

// QueryPort is the TUI-facing subset of the pipeline.
type QueryPort interface {
	Query(ctx context.Context, query string, topK int) (*domain.Answer, error)
	ConfidenceBand(conf int) string
}

// Model is the Bubble Tea model for the question-answering TUI.
type Model struct {
	service  QueryPort
	input    textinput.Model
	viewport viewport.Model
	answer   *domain.Answer
	summary  string
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance. The summary line comes from
// the indexing run and reminds the user which document is loaded.
func New(service QueryPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Sorunuzu yazın ve Enter'a basın"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Hazır. Soru sorabilirsiniz."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				answer, err := m.service.Query(context.Background(), q, 0)
				if err != nil {
					if domain.IsRetrievalUnavailable(err) {
						m.status = "Arama servisi kullanılamıyor: " + err.Error()
					} else {
						m.status = "Hata: " + err.Error()
					}
					m.answer = nil
				} else {
					m.answer = answer
					m.cursor = 0
					m.status = m.statusLine(answer)
				}
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "down":
			if m.answer != nil && len(m.answer.Citations) > 0 {
				m.cursor = (m.cursor + 1) % len(m.answer.Citations)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "up":
			if m.answer != nil && len(m.answer.Citations) > 0 {
				m.cursor = (m.cursor - 1 + len(m.answer.Citations)) % len(m.answer.Citations)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Anayasa Soru-Cevap")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) statusLine(a *domain.Answer) string {
	band := m.service.ConfidenceBand(a.Confidence)
	return fmt.Sprintf("Güven: %d/100 (%s), %d kaynak", a.Confidence, band, len(a.Citations))
}

func (m Model) renderAnswer() string {
	if m.answer == nil {
		return "Henüz sonuç yok."
	}
	var b strings.Builder
	conf := fmt.Sprintf("Güven skoru: %d/100", m.answer.Confidence)
	if m.answer.LowConfidence {
		b.WriteString(warningStyle.Render(conf + "  ⚠ " + m.answer.Warning))
	} else {
		b.WriteString(confidenceStyle.Render(conf))
	}
	b.WriteString("\n\n")
	if m.answer.Text != "" {
		b.WriteString(m.answer.Text)
		b.WriteString("\n\n")
	}
	if len(m.answer.Citations) == 0 {
		b.WriteString("Kaynak bulunamadı.")
		return b.String()
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Kaynaklar"))
	b.WriteString("\n")
	for i, c := range m.answer.Citations {
		label := c.Article
		if label == "" {
			label = c.SourceFile
		}
		line := fmt.Sprintf("[%d] %s (sayfa %d, skor %.2f)", i+1, label, c.Page, c.Score)
		if i == m.cursor {
			b.WriteString(highlightStyle.Render(line))
			b.WriteString("\n")
			b.WriteString(previewStyle.Render(c.Preview))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

var (
	resultBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	previewStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true)
	confidenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
