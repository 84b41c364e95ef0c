package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/atomicstack/xorg-choose-window/internal/alphabet"
	"github.com/atomicstack/xorg-choose-window/internal/format/tree"
	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/logging"
	"github.com/atomicstack/xorg-choose-window/internal/logging/events"
	"github.com/atomicstack/xorg-choose-window/internal/overlay"
	"github.com/atomicstack/xorg-choose-window/internal/selector"
	"github.com/atomicstack/xorg-choose-window/internal/theme"
	"github.com/atomicstack/xorg-choose-window/internal/ui"
	"github.com/atomicstack/xorg-choose-window/internal/window"
	"github.com/atomicstack/xorg-choose-window/internal/xserver"
)

// Config describes user-provided application options.
type Config struct {
	Alphabet  alphabet.Alphabet
	Criteria  window.Criteria
	Format    Format
	Display   string
	Overlay   xserver.OverlayOptions
	Terminal  bool
	PrintTree bool
}

// display is the part of the X connection a run needs.
type display interface {
	window.Inventory
	overlay.Factory
	GrabKeyboard(ctx context.Context) error
	UngrabKeyboard()
	Run(h xserver.Handlers) error
	Close()
}

var (
	connectDisplay = func(name string, opts xserver.OverlayOptions) (display, error) {
		conn, err := xserver.Connect(name, opts)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	runProgram = func(model *ui.Model) (*ui.Model, error) {
		final, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
		if m, ok := final.(*ui.Model); ok {
			model = m
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			err = nil
		}
		return model, err
	}
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	terminalWidth   = func() int {
		if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
			return w
		}
		return 0
	}
	stderr io.Writer = os.Stderr
)

// Run connects to X, labels the selectable windows and waits for the user to
// pick one.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Terminal && !stdinIsTerminal() {
		return Result{}, errors.New("terminal mode requires stdin to be a terminal")
	}
	d, err := connectDisplay(cfg.Display, cfg.Overlay)
	if err != nil {
		return Result{}, err
	}
	defer d.Close()

	windows, err := window.Select(d, cfg.Criteria)
	if err != nil {
		return Result{}, err
	}
	chars := cfg.Alphabet.Chars()
	frontier := labeltree.Build(windows, chars)
	events.Tree.Built(len(windows), len(chars),
		labeltree.Depth(len(windows), len(chars)), labeltree.Height(len(windows), len(chars)))
	if cfg.PrintTree {
		fmt.Fprint(stderr, tree.Render(frontier, theme.Default()))
	}

	var result Result
	if cfg.Terminal {
		result, err = chooseInTerminal(frontier, cfg.Alphabet)
	} else {
		result, err = chooseWithOverlays(ctx, d, frontier, cfg.Alphabet)
	}
	if err != nil {
		return Result{}, err
	}
	events.App.Finish(result.Outcome.String(), uint32(result.Window.ID))
	return result, nil
}

func chooseWithOverlays(ctx context.Context, d display, frontier []labeltree.Node, alpha alphabet.Alphabet) (Result, error) {
	presenter := overlay.NewPresenter(d, overlay.MaxLabelLength)
	machine := selector.New(frontier, alpha, presenter)
	defer func() {
		if err := machine.Close(); err != nil {
			logging.Error(err)
		}
		if err := presenter.Close(); err != nil {
			logging.Error(err)
		}
	}()

	// Zero or one window needs neither the keyboard nor any overlay.
	if len(frontier) < 2 {
		state, err := machine.Start()
		if err != nil {
			return Result{}, err
		}
		return resultFor(machine, state), nil
	}

	if err := d.GrabKeyboard(ctx); err != nil {
		return Result{}, err
	}
	defer d.UngrabKeyboard()

	state, err := machine.Start()
	if err != nil {
		return Result{}, err
	}
	if !state.Terminal() {
		err = d.Run(xserver.Handlers{
			Key: func(sym alphabet.Keysym) (bool, error) {
				s, err := machine.HandleKeysym(sym)
				return s.Terminal(), err
			},
			Expose: machine.Redraw,
		})
		if err != nil {
			return Result{}, err
		}
		state = machine.State()
	}
	return resultFor(machine, state), nil
}

func chooseInTerminal(frontier []labeltree.Node, alpha alphabet.Alphabet) (Result, error) {
	machine := selector.New(frontier, alpha, nil)
	state, err := machine.Start()
	if err != nil {
		return Result{}, err
	}
	if state.Terminal() {
		return resultFor(machine, state), nil
	}
	final, err := runProgram(ui.NewModel(machine, terminalWidth()))
	if err != nil {
		return Result{}, fmt.Errorf("terminal ui: %w", err)
	}
	if err := final.Err(); err != nil {
		return Result{}, err
	}
	machine = final.Machine()
	if machine.State() == selector.Ready {
		// The program ended without a decisive key, e.g. on SIGINT.
		machine.Cancel()
	}
	return resultFor(machine, machine.State()), nil
}

func resultFor(machine *selector.Machine, state selector.State) Result {
	switch state {
	case selector.Matched:
		w, _ := machine.Match()
		return Result{Outcome: OutcomeMatched, Window: w}
	case selector.Empty:
		return Result{Outcome: OutcomeEmpty}
	default:
		return Result{Outcome: OutcomeNoMatch}
	}
}
