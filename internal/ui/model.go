package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/xorg-choose-window/internal/selector"
	"github.com/atomicstack/xorg-choose-window/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type keyMap struct {
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+g"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model implements the Bubble Tea model for the terminal chooser.
type Model struct {
	machine  *selector.Machine
	keys     keyMap
	width    int
	quitting bool
	err      error

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps a started machine. width <= 0 disables truncation until the
// terminal reports its size.
func NewModel(machine *selector.Machine, width int) *Model {
	m := &Model{
		machine: machine,
		keys:    defaultKeyMap(),
		width:   width,
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	if m.quitting {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(km, m.keys.Cancel) {
		m.machine.Cancel()
		return m.quit()
	}
	if km.Type != tea.KeyRunes || km.Alt || len(km.Runes) != 1 {
		m.machine.Cancel()
		return m.quit()
	}
	state, err := m.machine.HandleChar(km.Runes[0])
	if err != nil {
		m.err = err
		return m.quit()
	}
	if state.Terminal() {
		return m.quit()
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// Machine exposes the selection state.
func (m *Model) Machine() *selector.Machine {
	return m.machine
}

// Err returns the failure that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}
