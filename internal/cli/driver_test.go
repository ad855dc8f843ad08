package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type scriptedChatter struct {
	inputs []string
	err    error
}

func (s *scriptedChatter) Chat(_ context.Context, message string) (string, error) {
	s.inputs = append(s.inputs, message)
	if s.err != nil {
		return "", s.err
	}
	return "echo: " + message, nil
}

func TestRunQuitOnFirstPrompt(t *testing.T) {
	chatter := &scriptedChatter{}
	var out bytes.Buffer
	d := NewDriver(strings.NewReader("q\n"), &out, chatter)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run err: %v", err)
	}
	if len(chatter.inputs) != 0 {
		t.Fatalf("expected no chat calls, got %v", chatter.inputs)
	}
	if out.String() != Prompt {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if d.State() != Stopped {
		t.Fatalf("expected STOPPED, got %s", d.State())
	}
}

func TestRunConversation(t *testing.T) {
	chatter := &scriptedChatter{}
	var out bytes.Buffer
	d := NewDriver(strings.NewReader("Hello\nHow are you?\nq\nnever read\n"), &out, chatter)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run err: %v", err)
	}

	if got := strings.Join(chatter.inputs, "|"); got != "Hello|How are you?" {
		t.Fatalf("unexpected chat inputs: %q", got)
	}
	want := "User : Assistant : echo: Hello\n" +
		"User : Assistant : echo: How are you?\n" +
		"User : "
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
	if d.Turns() != 2 {
		t.Fatalf("expected 2 turns, got %d", d.Turns())
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	chatter := &scriptedChatter{}
	var out bytes.Buffer
	d := NewDriver(strings.NewReader("first\r\nlast line"), &out, chatter)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run err: %v", err)
	}
	if got := strings.Join(chatter.inputs, "|"); got != "first|last line" {
		t.Fatalf("unexpected chat inputs: %q", got)
	}
	if d.State() != Stopped {
		t.Fatalf("expected STOPPED, got %s", d.State())
	}
}

func TestRunForwardsEmptyAndPaddedLines(t *testing.T) {
	chatter := &scriptedChatter{}
	d := NewDriver(strings.NewReader("\n q\nq \n"), &bytes.Buffer{}, chatter)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run err: %v", err)
	}
	if len(chatter.inputs) != 3 || chatter.inputs[0] != "" || chatter.inputs[1] != " q" || chatter.inputs[2] != "q " {
		t.Fatalf("unexpected chat inputs: %q", chatter.inputs)
	}
}

func TestRunPropagatesChatError(t *testing.T) {
	boom := errors.New("connection refused")
	chatter := &scriptedChatter{err: boom}
	var out bytes.Buffer
	d := NewDriver(strings.NewReader("Hello\nagain\n"), &out, chatter)

	if err := d.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected chat error, got %v", err)
	}
	if len(chatter.inputs) != 1 {
		t.Fatalf("expected loop to stop after failure, got %d calls", len(chatter.inputs))
	}
	if strings.Contains(out.String(), ReplyPrefix) {
		t.Fatalf("unexpected reply printed: %q", out.String())
	}
	if d.State() != Stopped {
		t.Fatalf("expected STOPPED, got %s", d.State())
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(text string) (string, error) {
	return strings.ToUpper(text), nil
}

func TestRunUsesRendererAndTurnHook(t *testing.T) {
	var hooked []int
	var out bytes.Buffer
	d := NewDriver(strings.NewReader("hi\nq\n"), &out, &scriptedChatter{},
		WithRenderer(upperRenderer{}),
		WithTurnHook(func(turn int) { hooked = append(hooked, turn) }),
	)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run err: %v", err)
	}
	if !strings.Contains(out.String(), "Assistant : ECHO: HI\n") {
		t.Fatalf("renderer not applied: %q", out.String())
	}
	if len(hooked) != 1 || hooked[0] != 1 {
		t.Fatalf("unexpected hook calls: %v", hooked)
	}
}

func TestSelectRendererFallsBackToPlain(t *testing.T) {
	if _, ok := SelectRenderer(false, os.Stdout).(PlainRenderer); !ok {
		t.Fatal("expected plain renderer when markdown is off")
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe err: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if _, ok := SelectRenderer(true, w).(PlainRenderer); !ok {
		t.Fatal("expected plain renderer for non-terminal output")
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r, err := NewMarkdownRenderer(0)
	if err != nil {
		t.Fatalf("NewMarkdownRenderer err: %v", err)
	}

	out, err := r.Render("**bold** answer")
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if !strings.Contains(out, "bold") || !strings.Contains(out, "answer") {
		t.Fatalf("unexpected markdown output: %q", out)
	}
	if strings.HasPrefix(out, "\n") {
		t.Fatalf("expected leading newlines trimmed: %q", out)
	}
}
