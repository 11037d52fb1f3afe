package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal500))

// Spinner shows progress for a blocking operation on stderr. Nested Start
// calls are reference counted so concurrent work shares one spinner.
type Spinner struct {
	mu      sync.Mutex
	count   int
	out     io.Writer
	isTTY   bool
	program *tea.Program
	done    chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	quit    bool
}

type msgUpdate string
type msgQuit struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case msgUpdate:
		m.message = string(msg)
		return m, nil
	case msgQuit:
		m.quit = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quit {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), DimStyle.Render(m.message))
}

func NewSpinner() *Spinner {
	return &Spinner{
		out:   os.Stderr,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewPlainSpinner never animates; it writes each message as a line to out.
func NewPlainSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.program != nil {
		s.program.Send(msgUpdate(message))
		return
	}
	if !s.isTTY {
		fmt.Fprintln(s.out, DimStyle.Render(message))
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	s.done = make(chan struct{})
	s.program = tea.NewProgram(spinnerModel{spinner: sp, message: message}, tea.WithOutput(s.out), tea.WithInput(nil))
	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.count > 0 {
		s.count--
	}
	if s.count > 0 || s.program == nil {
		s.mu.Unlock()
		return
	}
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()

	p.Send(msgQuit{})
	<-done
}

// Run shows message while fn executes.
func (s *Spinner) Run(message string, fn func() error) error {
	s.Start(message)
	defer s.Stop()
	return fn()
}

// WithSpinner executes fn while showing a new spinner.
func WithSpinner(message string, fn func() error) error {
	return NewSpinner().Run(message, fn)
}

// WithSpinnerResult executes fn, which returns a value, while showing a spinner.
func WithSpinnerResult[T any](message string, fn func() (T, error)) (T, error) {
	s := NewSpinner()
	s.Start(message)
	defer s.Stop()
	return fn()
}
