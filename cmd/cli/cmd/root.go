package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/controleopcoes/controleopcoes/internal/config"
	"github.com/controleopcoes/controleopcoes/internal/constants"
	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"
	"github.com/controleopcoes/controleopcoes/internal/logger"
	"github.com/controleopcoes/controleopcoes/internal/output"

	"github.com/spf13/cobra"
)

var (
	configFile    string
	debug         bool
	dryRun        bool
	timeout       string
	timeoutCancel context.CancelFunc
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName,
	Short: "Provision the " + constants.DisplayName + " DynamoDB table",
	Long: fmt.Sprintf(`%s - %s
Idempotently provisions the DynamoDB table used by %s and prints the
remaining deployment checklist. Running without a subcommand is the same as
running "setup".`,
		constants.ProjectName, *constants.GetVersion(), constants.DisplayName),
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		startTime := time.Now().UTC()
		cmd.SetContext(context.WithValue(cmd.Context(), constants.StartTimeCtxKey, startTime))

		cfg, err := config.Load(config.LoadOptions{
			ConfigFile: configFile,
			Flags:      cmd.Flags(),
		})
		if err != nil {
			return err
		}

		logLevel := cfg.GetLogLevel()
		if debug {
			logLevel = slog.LevelDebug
		}
		log := logger.Initialize(cfg.GetEnvironment(), logLevel)
		log.Debug("configuration loaded", "context", map[string]string{
			"region":   cfg.Region,
			"table":    cfg.TableName,
			"endpoint": cfg.Endpoint,
		})

		cmd.SetContext(context.WithValue(cmd.Context(), constants.ConfigCtxKey, cfg))

		// NOTICE: this runs after flags are parsed but before the command runs
		return applyTimeout(cmd, timeout)
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		if verbose {
			startTime := getStartTimeFromContext(cmd)
			if !startTime.IsZero() {
				output.Infof("Time elapsed: %s", output.Bold(time.Since(startTime).String()))
			}
		}
		if timeoutCancel != nil {
			timeoutCancel()
		}
	},
	RunE: setupRun,
}

// Execute runs the root command and handles cleanup of timeout context.
func Execute() {
	err := rootCmd.Execute()
	if timeoutCancel != nil {
		timeoutCancel()
	}

	os.Exit(apperrors.ExitCode(err))
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "",
		"Config file (default is ~/"+constants.ConfigDirName+"/"+constants.ConfigFileName+")")
	flags.String("region", "", "AWS region of the table (default "+constants.DefaultRegion+")")
	flags.String("table-name", "", "Name of the table to provision (default "+constants.DefaultTableName+")")
	flags.String("endpoint", "", "Custom DynamoDB endpoint, e.g. "+constants.DynamoDBLocalEndpoint+" for DynamoDB Local")
	flags.StringArray("tag", []string{}, "Table tag in KEY=VALUE format (can be specified multiple times)")
	flags.StringVar(&timeout, "timeout", "0", "Timeout for command execution (e.g., 10m, 30s, 1h); 0 disables it")
	flags.BoolVar(&verbose, "verbose", false, "Verbose output")
	flags.BoolVar(&debug, "debug", false, "Enable debugging logs")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resolved table spec without calling AWS")
}

// parseTimeout parses timeout string to time.Duration
// Supports formats: "10m", "30s", "1h", "600s" (number of seconds)
// applyTimeout bounds the command context by timeoutStr. Any zero duration
// ("0", "0s", "00") leaves the context without a deadline.
func applyTimeout(cmd *cobra.Command, timeoutStr string) error {
	timeoutDuration, err := parseTimeout(timeoutStr)
	if err != nil {
		return apperrors.ErrInvalidConfig("error parsing timeout", err)
	}
	if timeoutDuration == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeoutDuration)
	timeoutCancel = cancel // Store for cleanup in PersistentPostRun and Execute()
	cmd.SetContext(ctx)

	return nil
}

func parseTimeout(timeoutStr string) (time.Duration, error) {
	if timeoutStr == "" {
		return 0, errors.New("timeout cannot be empty (use 0 to disable it)")
	}

	// Try parsing as duration first (supports "10m", "30s", "1h", etc.)
	duration, err := time.ParseDuration(timeoutStr)
	if err == nil {
		if duration < 0 {
			return 0, fmt.Errorf("invalid timeout: %s (must not be negative)", timeoutStr)
		}
		return duration, nil
	}

	// If duration parsing fails, try parsing as seconds (integer)
	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil || seconds < 0 {
		errMsg := fmt.Sprintf(
			"invalid timeout format: %s (use duration like '10m' or '30s', or seconds like '600')",
			timeoutStr)
		return 0, errors.New(errMsg)
	}

	return time.Duration(seconds) * time.Second, nil
}

// getConfigFromContext retrieves the config from the command context
func getConfigFromContext(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(constants.ConfigCtxKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, apperrors.ErrInvalidConfig("config not found in context", nil)
	}
	return cfg, nil
}

func getStartTimeFromContext(cmd *cobra.Command) time.Time {
	startTime, ok := cmd.Context().Value(constants.StartTimeCtxKey).(time.Time)
	if !ok {
		return time.Time{}
	}
	return startTime
}

// RootCmd returns the root command for use by tools like doc generators.
func RootCmd() *cobra.Command {
	return rootCmd
}
