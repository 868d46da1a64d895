package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	classifierDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/domain"
	classifierService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/service"
	keywordRepo "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/repository"
	keywordService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/service"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/database"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var (
		dbPath   string
		keywords []string
		minus    []string
	)

	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Show what the monitor would do with a message",
		Long: "Runs the classification pipeline against the given text. Keywords come from " +
			"--keyword/--minus when given, otherwise from the database.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			if len(keywords) == 0 && len(minus) == 0 {
				db, err := database.Open(dbPath)
				if err != nil {
					return err
				}
				defer database.Close(db)

				svc := classifierService.New(keywordService.New(keywordRepo.NewSQLiteStorage(db)))
				outcome, err := svc.Classify(cmd.Context(), text)
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), outcome)
				return nil
			}

			printOutcome(cmd.OutOrStdout(), classifierService.Classify(text, keywords, minus))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "./data/monitor.db", "path to the SQLite database")
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "keyword to match (repeatable)")
	cmd.Flags().StringSliceVarP(&minus, "minus", "m", nil, "minus word (repeatable)")
	return cmd
}

func printOutcome(w io.Writer, outcome classifierDomain.Outcome) {
	if keyword, ok := outcome.Keyword(); ok {
		fmt.Fprintf(w, "%s keyword %q\n", color.GreenString("MATCHED"), keyword)
		return
	}

	reason, _ := outcome.Reason()
	label := color.YellowString("IGNORED")
	if reason == classifierDomain.IgnoreReasonSuspectedEvasion {
		label = color.RedString("IGNORED")
	}
	fmt.Fprintf(w, "%s %s\n", label, reason)
}
