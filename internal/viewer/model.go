// Package viewer is the read-only PATH viewer. It shows the User and
// Machine PATH side by side and re-reads both whenever it is told the
// values changed.
package viewer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/pathlist"
)

// Reader loads the PATH of a scope.
type Reader interface {
	Read(scope envstore.Scope) (pathlist.List, error)
}

// RefreshMsg asks the viewer to re-read both scopes.
type RefreshMsg struct {
	Reason string
}

type loadedMsg struct {
	reason string
	lists  map[envstore.Scope]pathlist.List
	errs   map[envstore.Scope]error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A50A"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E01B24"))
)

// Model is the bubbletea model of the viewer.
type Model struct {
	reader Reader
	scopes []envstore.Scope
	title  string
	vp     viewport.Model

	width  int
	height int

	lists     map[envstore.Scope]pathlist.List
	errs      map[envstore.Scope]error
	status    string
	refreshes int

	// exists is replaced in tests
	exists func(dir string) bool
}

// New returns a viewer over scopes. An empty scopes shows both.
func New(reader Reader, scopes []envstore.Scope, title string) *Model {
	if len(scopes) == 0 {
		scopes = envstore.Scopes()
	}
	return &Model{
		reader: reader,
		scopes: scopes,
		title:  title,
		vp:     viewport.New(80, 20),
		exists: dirExists,
	}
}

func dirExists(dir string) bool {
	fi, err := os.Stat(ExpandEntry(dir))
	return err == nil && fi.IsDir()
}

// ExpandEntry expands %VAR% references in a PATH entry the way Windows
// does: a reference to an unset variable is left as written, and nothing
// else in the entry is special.
func ExpandEntry(entry string) string {
	var b strings.Builder
	s := entry
	for {
		i := strings.IndexByte(s, '%')
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i+1:], '%')
		if j < 0 {
			break
		}
		b.WriteString(s[:i])
		name := s[i+1 : i+1+j]
		if v, ok := os.LookupEnv(name); ok && name != "" {
			b.WriteString(v)
			s = s[i+2+j:]
			continue
		}
		// the closing % may open the next reference
		b.WriteString("%" + name)
		s = s[i+1+j:]
	}
	b.WriteString(s)
	return b.String()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title), m.load("startup"))
}

func (m *Model) load(reason string) tea.Cmd {
	return func() tea.Msg {
		msg := loadedMsg{
			reason: reason,
			lists:  map[envstore.Scope]pathlist.List{},
			errs:   map[envstore.Scope]error{},
		}
		for _, s := range m.scopes {
			l, err := m.reader.Read(s)
			if err != nil {
				msg.errs[s] = err
				continue
			}
			msg.lists[s] = l
		}
		return msg
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-4, 1)
		m.vp.SetContent(m.Content())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.load("manual")
		}
	case RefreshMsg:
		return m, m.load(msg.Reason)
	case loadedMsg:
		m.lists, m.errs = msg.lists, msg.errs
		m.refreshes++
		m.status = fmt.Sprintf("loaded (%s)", msg.reason)
		m.vp.SetContent(m.Content())
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(noteStyle.Render("r refresh • ↑/↓ scroll • q quit • " + m.status))
	return b.String()
}

// Refreshes counts completed loads.
func (m *Model) Refreshes() int { return m.refreshes }

// Content renders the loaded lists without styling of the frame.
func (m *Model) Content() string {
	var b strings.Builder
	for i, s := range m.scopes {
		if i > 0 {
			b.WriteString("\n")
		}
		if err, ok := m.errs[s]; ok {
			b.WriteString(sectionStyle.Render(s.String() + " PATH"))
			b.WriteString("\n")
			b.WriteString(errStyle.Render("  cannot read: " + err.Error()))
			b.WriteString("\n")
			continue
		}
		l := m.lists[s]
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s PATH (%d entries)", s, l.Len())))
		b.WriteString("\n")
		if l.Len() == 0 {
			b.WriteString(noteStyle.Render("  (empty)"))
			b.WriteString("\n")
		}
		for n, e := range l.Entries() {
			line := fmt.Sprintf("  %3d  %s", n+1, displayEntry(e))
			var notes []string
			if m.exists != nil && !m.exists(e) {
				notes = append(notes, "missing")
			}
			for _, other := range m.scopes {
				if other != s && m.lists[other].Contains(e) {
					notes = append(notes, "also in "+other.String())
				}
			}
			if len(notes) > 0 {
				line += " " + warnStyle.Render("("+strings.Join(notes, ", ")+")")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
