package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/remote"
	"github.com/DKS2424/Travel/internal/store"
)

func listCommand() *command {
	return &command{
		name:    "list",
		summary: "List treks by start date",
		usage:   "trekctl list",
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, _ []string) error {
			st, err := loadTreks(ctx, a)
			if err != nil {
				return err
			}
			printTrekTable(a.std.out, st.Treks)
			return nil
		},
	}
}

func showCommand() *command {
	return &command{
		name:    "show",
		summary: "Show one trek in full",
		usage:   "trekctl show <trek-id>",
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			id, err := trekIDArg(args)
			if err != nil {
				return err
			}
			if a.client == nil {
				return errors.New(store.NotConfiguredFetch)
			}
			t, err := a.client.Get(ctx, id)
			if remote.IsStatus(err, http.StatusNotFound) {
				return fmt.Errorf("trek %s not found", id)
			}
			if err != nil {
				return err
			}
			printTrek(a.std.out, t)
			return nil
		},
	}
}

func statsCommand() *command {
	return &command{
		name:    "stats",
		summary: "Show catalog totals (admin)",
		usage:   "trekctl stats",
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, _ []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			s := a.openStore(ctx)
			if st := s.State(); st.Error != "" {
				return errors.New(st.Error)
			}
			printSummary(a.std.out, s.Summary())
			return nil
		},
	}
}

func createCommand() *command {
	var f trekFlags
	return &command{
		name:    "create",
		summary: "Add a trek (admin)",
		usage:   "trekctl create --title <t> --difficulty <d> --price <p> --start <date> --end <date> --max <n> [flags]",
		flags:   f.addFields,
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			if len(args) != 0 {
				return usagef("create takes no arguments")
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}
			nt, err := f.newTrek()
			if err != nil {
				return err
			}
			res := a.openStore(ctx).Create(ctx, nt)
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintf(a.std.out, "Created %s (%s)\n", res.Data.Title, res.Data.ID)
			return nil
		},
	}
}

func updateCommand() *command {
	var f trekFlags
	return &command{
		name:    "update",
		summary: "Change fields of a trek (admin)",
		usage:   "trekctl update <trek-id> [flags]",
		flags: func(fs *pflag.FlagSet) {
			f.addFields(fs)
			f.addEdits(fs)
		},
		run: func(ctx context.Context, a *app, fs *pflag.FlagSet, args []string) error {
			id, err := trekIDArg(args)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}
			current, s, err := findTrek(ctx, a, id)
			if err != nil {
				return err
			}
			patch, err := f.patch(fs, current)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return usagef("nothing to update; pass at least one field flag")
			}
			res := s.Update(ctx, id, patch)
			if !res.Success {
				return errors.New(res.Error)
			}
			printTrek(a.std.out, *res.Data)
			return nil
		},
	}
}

func deleteCommand() *command {
	var yes bool
	return &command{
		name:    "delete",
		summary: "Remove a trek (admin)",
		usage:   "trekctl delete <trek-id> [--yes]",
		flags: func(fs *pflag.FlagSet) {
			fs.BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
		},
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			id, err := trekIDArg(args)
			if err != nil {
				return err
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}
			t, s, err := findTrek(ctx, a, id)
			if err != nil {
				return err
			}
			if !yes {
				answer, err := a.prompt(fmt.Sprintf("Delete %q? [y/N] ", t.Title))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" && answer != "yes" {
					fmt.Fprintln(a.std.out, "Cancelled.")
					return nil
				}
			}
			if res := s.Delete(ctx, id); !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintf(a.std.out, "Deleted %s\n", t.Title)
			return nil
		},
	}
}

// loadTreks opens the store and reports a failed fetch as an error.
func loadTreks(ctx context.Context, a *app) (store.State, error) {
	st := a.openStore(ctx).State()
	if st.Error != "" {
		return st, errors.New(st.Error)
	}
	return st, nil
}

// findTrek fetches the catalog and returns the trek with id along with the
// store that holds it.
func findTrek(ctx context.Context, a *app, id uuid.UUID) (domain.Trek, *store.Store, error) {
	s := a.openStore(ctx)
	if st := s.State(); st.Error != "" {
		return domain.Trek{}, nil, errors.New(st.Error)
	}
	t, ok := s.Get(id)
	if !ok {
		return domain.Trek{}, nil, fmt.Errorf("trek %s not found", id)
	}
	return t, s, nil
}

func trekIDArg(args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, usagef("expected exactly one trek id")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, usagef("invalid trek id %q", args[0])
	}
	return id, nil
}
