package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// command is one trekctl subcommand.
type command struct {
	name    string
	summary string
	usage   string
	// flags registers the command's own flags. Nil means none.
	flags func(*pflag.FlagSet)
	// run executes the command with the positional args left after parsing.
	run func(ctx context.Context, a *app, fs *pflag.FlagSet, args []string) error
}

// usageError marks a mistake in how trekctl was invoked.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func commands() []*command {
	return []*command{
		loginCommand(),
		signupCommand(),
		logoutCommand(),
		whoamiCommand(),
		confirmCommand(),
		listCommand(),
		showCommand(),
		statsCommand(),
		exportCommand(),
		createCommand(),
		updateCommand(),
		deleteCommand(),
	}
}

// run parses the global flags, builds the app and dispatches to a command.
func run(ctx context.Context, args []string, std ioStreams) error {
	var global globalFlags
	flagSet := pflag.NewFlagSet("trekctl", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(std.err)
	global.addFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(std.out, flagSet)
			return nil
		}
		return usagef("%v", err)
	}

	rest := flagSet.Args()
	if len(rest) == 0 || rest[0] == "help" {
		printHelp(std.out, flagSet)
		return nil
	}

	cmd := lookup(rest[0])
	if cmd == nil {
		return usagef("unknown command %q (run trekctl help)", rest[0])
	}

	cmdFlags := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	cmdFlags.SetOutput(std.err)
	if cmd.flags != nil {
		cmd.flags(cmdFlags)
	}
	if err := cmdFlags.Parse(rest[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(std.out, "usage: %s\n\n%s\n\n", cmd.usage, cmd.summary)
			cmdFlags.SetOutput(std.out)
			cmdFlags.PrintDefaults()
			return nil
		}
		return usagef("%s: %v", cmd.name, err)
	}

	a, err := newApp(ctx, global, std)
	if err != nil {
		return err
	}
	defer a.close()

	return cmd.run(ctx, a, cmdFlags, cmdFlags.Args())
}

func lookup(name string) *command {
	for _, c := range commands() {
		if c.name == name {
			return c
		}
	}
	return nil
}

func printHelp(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(w, "trekctl: browse and manage the TrekZone trek catalog")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage: trekctl [global flags] <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range commands() {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fmt.Fprint(w, indent(global.FlagUsages()))
}

func indent(s string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if line != "" {
			b.WriteString("  " + line)
		}
	}
	return b.String()
}
