// Command chat is a terminal front end for the booking assistant.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"tailortalk/config"

	"github.com/chzyer/readline"
)

const banner = `TailorTalk booking assistant
Ask about free times or book an appointment. Type /new to start over, /quit to exit.
`

func main() {
	config.LoadConfig()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    500,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start terminal: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, rl, newClient(config.AppConfig.BackendURL), rl.Stdout()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type lineReader interface {
	Readline() (string, error)
}

func run(ctx context.Context, in lineReader, c *client, out io.Writer) error {
	fmt.Fprint(out, banner)
	for {
		line, err := in.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "/new":
			c.reset()
			fmt.Fprintln(out, "Started a new conversation.")
			continue
		}

		reply, err := c.send(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "assistant> %s\n", reply)
	}
}
