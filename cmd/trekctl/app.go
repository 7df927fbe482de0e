package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/config"
	"github.com/DKS2424/Travel/internal/remote"
	"github.com/DKS2424/Travel/internal/store"
)

// ioStreams are the process streams, swapped out in tests.
type ioStreams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	// readPassword reads a secret without echo. Nil means stdin is not a
	// terminal and the secret is read as a plain line.
	readPassword func() ([]byte, error)
}

func stdio() ioStreams {
	s := ioStreams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		s.readPassword = func() ([]byte, error) { return term.ReadPassword(fd) }
	}
	return s
}

// globalFlags apply to every command.
type globalFlags struct {
	client config.ClientFlags
	debug  bool
	policy string
}

func (g *globalFlags) addFlags(flagSet *pflag.FlagSet) {
	g.client.AddFlags(flagSet)
	flagSet.BoolVar(&g.debug, "debug", false, "log requests and errors to stderr")
	flagSet.StringVar(&g.policy, "admin-email", "", "account treated as admin (default: admin@trekzone.com)")
}

// app holds what a command needs: the identity resolver, the trek store and
// the streams to talk to the user through.
type app struct {
	std      ioStreams
	log      *slog.Logger
	resolver *auth.Resolver
	client   *remote.Client
	table    store.Table
	lines    *bufio.Reader
}

// newApp builds the resolver and the store from the client configuration.
// A missing URL or anon key is not an error: both run unconfigured and every
// operation reports it.
func newApp(ctx context.Context, g globalFlags, std ioStreams) (*app, error) {
	level := slog.LevelWarn
	if g.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(std.err, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadClient(g.client)
	if err != nil {
		return nil, err
	}

	a := &app{std: std, log: logger, lines: bufio.NewReader(std.in)}

	var provider auth.IdentityProvider
	if rc := (remote.Config{URL: cfg.URL, AnonKey: cfg.AnonKey}); rc.Configured() {
		sessionPath := cfg.SessionFile
		if sessionPath == "" {
			if sessionPath, err = remote.DefaultSessionPath(); err != nil {
				return nil, err
			}
		}
		client, err := remote.New(rc,
			remote.WithSessionStore(remote.FileSessionStore{Path: sessionPath}),
			remote.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		a.client = client
		a.table = client
		provider = client
	} else {
		logger.Debug("service not configured", "url_set", cfg.URL != "", "anon_key_set", cfg.AnonKey != "")
	}

	a.resolver = auth.NewResolver(provider,
		auth.WithPolicy(auth.NewEmailPolicy(g.policy)),
		auth.WithLogger(logger),
	)
	a.resolver.Start(ctx)
	return a, nil
}

func (a *app) close() {
	a.resolver.Close()
}

// openStore returns a store that has completed its initial fetch.
func (a *app) openStore(ctx context.Context) *store.Store {
	return store.Open(ctx, a.table, store.WithLogger(a.log))
}

// requireAdmin fails unless the signed-in account may change the catalog.
func (a *app) requireAdmin() error {
	st := a.resolver.Current()
	if st.Session == nil {
		return errors.New("not signed in (run trekctl login)")
	}
	if !st.IsAdmin {
		return fmt.Errorf("%s is not an admin account", st.Session.Email)
	}
	return nil
}

// prompt writes label and reads one line of input.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.std.err, label)
	line, err := a.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal.
func (a *app) promptPassword(label string) (string, error) {
	if a.std.readPassword == nil {
		return a.prompt(label)
	}
	fmt.Fprint(a.std.err, label)
	pw, err := a.std.readPassword()
	fmt.Fprintln(a.std.err)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}
