package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"diarylens/adapters/postgres"
	"diarylens/domain/core"
	"diarylens/domain/diary"
	"diarylens/internal/errors"
	"diarylens/ports"

	"github.com/spf13/cobra"
)

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Inspect and annotate imported entries",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print one entry with its comments as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: withEntryRepository(func(cmd *cobra.Command, repo ports.EntryRepository, args []string) error {
				entry, err := showEntry(cmd.Context(), repo, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), entry)
			}),
		},
		&cobra.Command{
			Use:   "comment <id> <text>",
			Short: "Attach a comment to an entry",
			Args:  cobra.MinimumNArgs(2),
			RunE: withEntryRepository(func(cmd *cobra.Command, repo ports.EntryRepository, args []string) error {
				return commentOnEntry(cmd.Context(), repo, args[0], strings.Join(args[1:], " "), time.Now())
			}),
		},
		newFavoriteCmd(),
	)
	return cmd
}

func newFavoriteCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark an entry as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: withEntryRepository(func(cmd *cobra.Command, repo ports.EntryRepository, args []string) error {
			return favoriteEntry(cmd.Context(), repo, args[0], !off)
		}),
	}

	cmd.Flags().BoolVar(&off, "off", false, "Clear the favorite flag instead")
	return cmd
}

// withEntryRepository opens the database for the duration of one command.
func withEntryRepository(run func(cmd *cobra.Command, repo ports.EntryRepository, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return run(cmd, postgres.NewEntryRepository(db), args)
	}
}

func parseEntryArg(arg string) (string, error) {
	id, err := core.ParseEntryID(arg)
	if err != nil {
		return "", errors.ValidationError(err.Error())
	}
	return id.String(), nil
}

func entryError(err error, id, action string) error {
	if core.IsNotFoundError(err) {
		return errors.NotFound("entry " + id)
	}
	return errors.DatabaseError(fmt.Sprintf("failed to %s entry %s", action, id), err)
}

func showEntry(ctx context.Context, repo ports.EntryRepository, arg string) (*diary.Entry, error) {
	id, err := parseEntryArg(arg)
	if err != nil {
		return nil, err
	}
	entry, err := repo.GetEntry(ctx, id)
	if err != nil {
		return nil, entryError(err, id, "load")
	}
	return entry, nil
}

func commentOnEntry(ctx context.Context, repo ports.EntryRepository, arg, text string, now time.Time) error {
	id, err := parseEntryArg(arg)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ValidationError("comment cannot be empty")
	}
	if err := repo.AddComment(ctx, id, diary.Comment{Content: text, CreatedAt: now.UTC()}); err != nil {
		return entryError(err, id, "comment on")
	}
	return nil
}

func favoriteEntry(ctx context.Context, repo ports.EntryRepository, arg string, favorite bool) error {
	id, err := parseEntryArg(arg)
	if err != nil {
		return err
	}
	if err := repo.SetFavorite(ctx, id, favorite); err != nil {
		return entryError(err, id, "update")
	}
	return nil
}
