package main

import (
	"fmt"
	"os"

	"github.com/AndrewHarrisSPU/scopelog"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var rootCmd = &cobra.Command{
	Use:   "scopedemo",
	Short: "scopedemo shows scopes replayed around logged errors",
	Long: `scopedemo runs a request through nested, suspending scopes.
An error raised deep inside is logged after every inner scope has ended,
and the inner scopes are replayed onto the log line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := loggerFromFlags(cmd)
		if err != nil {
			return err
		}
		defer log.Close()

		requests, _ := cmd.Flags().GetInt("requests")
		return serve(cmd.Context(), log, requests)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("json", false, "Encode as JSON rather than text")
	rootCmd.Flags().String("level", "INFO", "Least level logged (DEBUG, INFO, WARN, ERROR)")
	rootCmd.Flags().Bool("source", false, "Add source file and line")
	rootCmd.Flags().Int("requests", 3, "Number of concurrent requests")
}

func loggerFromFlags(cmd *cobra.Command) (*scopelog.Logger, error) {
	var level slog.Level
	name, _ := cmd.Flags().GetString("level")
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("--level: %w", err)
	}

	options := []scopelog.Option{
		scopelog.Using.Writer(cmd.OutOrStdout()),
		scopelog.Using.Level(level),
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		options = append(options, scopelog.Using.JSON)
	} else {
		options = append(options, scopelog.Using.Text)
	}

	if source, _ := cmd.Flags().GetBool("source"); source {
		options = append(options, scopelog.Using.Source)
	}

	return scopelog.New(options...), nil
}
