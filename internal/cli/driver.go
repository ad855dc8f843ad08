package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	Prompt      = "User : "
	ReplyPrefix = "Assistant : "
	// QuitToken ends the loop when entered on its own line.
	QuitToken = "q"
)

// Chatter is the conversation the driver feeds lines into.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// State of the read loop. STOPPED is terminal.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Driver reads user lines and prints assistant replies until the quit token
// or end of input.
type Driver struct {
	in       *bufio.Reader
	out      io.Writer
	chatter  Chatter
	renderer Renderer
	onTurn   func(turn int)
	state    State
	turns    int
}

// Option customises a Driver.
type Option func(*Driver)

// WithRenderer formats replies before printing. Defaults to PlainRenderer.
func WithRenderer(r Renderer) Option {
	return func(d *Driver) {
		if r != nil {
			d.renderer = r
		}
	}
}

// WithTurnHook runs fn after each completed turn with the turn count.
func WithTurnHook(fn func(turn int)) Option {
	return func(d *Driver) {
		d.onTurn = fn
	}
}

// NewDriver wires a driver to in/out.
func NewDriver(in io.Reader, out io.Writer, chatter Chatter, opts ...Option) *Driver {
	d := &Driver{
		in:       bufio.NewReader(in),
		out:      out,
		chatter:  chatter,
		renderer: PlainRenderer{},
		state:    Running,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State reports where the loop is.
func (d *Driver) State() State {
	return d.state
}

// Turns reports how many replies were printed.
func (d *Driver) Turns() int {
	return d.turns
}

// Run loops until the quit token, end of input or a chat failure. Chat
// failures are returned unchanged and leave the driver stopped.
func (d *Driver) Run(ctx context.Context) error {
	defer func() { d.state = Stopped }()

	for d.state == Running {
		if _, err := io.WriteString(d.out, Prompt); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}

		line, ok, err := d.readLine()
		if err != nil {
			return err
		}
		if !ok || line == QuitToken {
			return nil
		}

		reply, err := d.chatter.Chat(ctx, line)
		if err != nil {
			return err
		}

		rendered, err := d.renderer.Render(reply)
		if err != nil {
			return fmt.Errorf("render reply: %w", err)
		}
		if _, err := fmt.Fprintf(d.out, "%s%s\n", ReplyPrefix, rendered); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}

		d.turns++
		if d.onTurn != nil {
			d.onTurn(d.turns)
		}
	}
	return nil
}

// readLine returns the next line without its terminator. ok is false once
// the input is exhausted.
func (d *Driver) readLine() (string, bool, error) {
	line, err := d.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}
