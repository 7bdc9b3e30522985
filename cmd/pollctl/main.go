package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-poll/client"
	"github.com/danielhkuo/quickly-poll/cliparse"
)

const usage = `Usage: pollctl [-server URL] <command> [args]

Commands:
  list                                  List ongoing and completed polls
  show <name>                           Show a poll's options or results
  new [-minutes N] <name> <option>...   Start a poll (at least two options)
  vote <name> <voter> <option>          Vote in an ongoing poll
`

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	fs := flag.NewFlagSet("pollctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	defaultServer := os.Getenv("POLL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8088"
	}
	server := fs.String("server", defaultServer, "Poll server base URL")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	c := client.New(*server, nil)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	var err error
	switch cmd {
	case "list":
		err = listCmd(ctx, c, stdout, now)
	case "show":
		err = showCmd(ctx, c, rest, stdout, now)
	case "new":
		err = newCmd(ctx, c, rest, stdout, stderr)
	case "vote":
		err = voteCmd(ctx, c, rest, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	if errors.Is(err, errUsage) {
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

var errUsage = errors.New("usage")

func listCmd(ctx context.Context, c *client.Client, stdout io.Writer, now func() time.Time) error {
	polls, err := c.List(ctx)
	if err != nil {
		return err
	}
	renderList(stdout, polls, now())
	return nil
}

func showCmd(ctx context.Context, c *client.Client, args []string, stdout io.Writer, now func() time.Time) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := c.Get(ctx, args[0])
	if err != nil {
		return err
	}
	renderPoll(stdout, p, now())
	return nil
}

func newCmd(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(stderr)
	minutes := fs.String("minutes", "60", "How long the poll stays open")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	form, err := client.ValidateNewPoll(fs.Arg(0), *minutes, strings.Join(fs.Args()[1:], "\n"))
	if err != nil {
		return err
	}

	p, err := c.Add(ctx, form.Name, form.Minutes, form.Options)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Started poll %q with %d options\n", p.Name, len(p.Options))
	return nil
}

func voteCmd(ctx context.Context, c *client.Client, args []string, stdout io.Writer) error {
	if len(args) != 3 {
		return errUsage
	}
	name, voter, vote := args[0], args[1], args[2]

	p, err := c.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := client.ValidateVote(p, voter, vote); err != nil {
		return err
	}

	if _, err := c.Vote(ctx, name, voter, vote); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Recorded %s's vote for %q in %q\n", voter, vote, name)
	return nil
}
