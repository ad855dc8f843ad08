package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/zhouzirui/simplechat/internal/cli"
	"github.com/zhouzirui/simplechat/internal/config"
	"github.com/zhouzirui/simplechat/internal/service/chat"
)

type options struct {
	Model   string `help:"Chat model served by the local endpoint (overrides CHAT_MODEL)." placeholder:"NAME"`
	Render  bool   `help:"Render replies as markdown when stdout is a terminal."`
	Verbose bool   `short:"v" help:"Log session details and transcript size to stderr."`
}

func parseOptions(args []string) (options, error) {
	var opts options
	parser, err := kong.New(&opts,
		kong.Name("chat"),
		kong.Description("Chat with a locally hosted model. Enter q to quit."),
	)
	if err != nil {
		return opts, err
	}
	if _, err := parser.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// apply overlays the flags onto cfg and returns the log destination.
// stdout carries the conversation only.
func (o options) apply(cfg *config.Config, stderr io.Writer) io.Writer {
	if o.Model != "" {
		cfg.Chat.Model = o.Model
	}
	if !o.Verbose {
		return io.Discard
	}
	return stderr
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.SetOutput(opts.apply(cfg, os.Stderr))

	session := chat.New(cfg.Chat.SessionConfig())
	log.Printf("[chat] session=%s model=%s endpoint=%s", session.ID(), session.Model(), session.Config().BaseURL)

	driver := cli.NewDriver(os.Stdin, os.Stdout, session,
		cli.WithRenderer(cli.SelectRenderer(opts.Render, os.Stdout)),
		cli.WithTurnHook(func(turn int) {
			if !opts.Verbose {
				return
			}
			tokens, err := session.TokenCount()
			if err != nil {
				log.Printf("[chat] token count unavailable: %v", err)
				return
			}
			log.Printf("[chat] turn=%d messages=%d transcript tokens~%d", turn, session.Len(), tokens)
		}),
	)

	// Ctrl+C keeps its default behaviour and ends the process, even mid-read.
	if err := driver.Run(context.Background()); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("chat failed: %v", err)
	}
}
