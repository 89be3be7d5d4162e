package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandevgo/locbot/internal/config"
	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/internal/storage/sqlite"
)

var auditSession string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recent transcript of a conversation",
	Long:  `Prints the last LOCBOT_TRANSCRIPT_LIMIT transcript entries of a conversation, oldest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		cfg := config.NewAppConfig(ctx)

		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := sqlite.NewTranscriptRepo(db).Recent(ctx, auditSession, cfg.TranscriptLimit)
		if err != nil {
			return err
		}
		printTranscript(cmd.OutOrStdout(), entries)
		return nil
	},
}

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List the places captured in a conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		cfg := config.NewAppConfig(ctx)

		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		places, err := sqlite.NewPlacesRepo(db).ListPlaces(ctx, auditSession, cfg.TranscriptLimit)
		if err != nil {
			return err
		}
		printPlaces(cmd.OutOrStdout(), places)
		return nil
	},
}

func printTranscript(w io.Writer, entries []core.TranscriptEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no transcript entries")
		return
	}
	for _, e := range entries {
		marker := "<-"
		if e.Direction == core.DirectionIn {
			marker = "->"
		}
		fmt.Fprintf(w, "%s %s %s\n", e.CreatedAt.Format(time.DateTime), marker, e.Text)
	}
}

func printPlaces(w io.Writer, places []core.Place) {
	if len(places) == 0 {
		fmt.Fprintln(w, "no places captured")
		return
	}
	for _, p := range places {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.CreatedAt.Format(time.DateTime), p.Address)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{historyCmd, placesCmd} {
		cmd.Flags().StringVar(&auditSession, "session", "cli-local", "conversation to inspect")
		rootCmd.AddCommand(cmd)
	}
}
