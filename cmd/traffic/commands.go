// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/fleettraffic/pkg/logging"
)

// --- Global Command Variables ---
var (
	logLevel string
	logJSON  bool

	startTime string // RFC3339 scenario start for inspect/query
	queryAt   string // query time for the query command

	logger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "traffic",
		Short: "A cli to validate and inspect fleet traffic scenarios",
		Long: `Traffic loads fleet scenario files, materializes their waypoint
timelines, and answers schedule queries against them.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logging.Config{
				Level:   parseLogLevel(logLevel),
				JSON:    logJSON,
				Service: "traffic",
			})
		},
	}

	validateCmd = &cobra.Command{
		Use:   "validate [scenario.yaml]",
		Short: "Check a scenario file without building it",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate, // Defined in cmd_validate.go
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect [scenario.yaml]",
		Short: "Build a scenario and print every participant timeline",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect, // Defined in cmd_inspect.go
	}

	queryCmd = &cobra.Command{
		Use:   "query [scenario.yaml]",
		Short: "List the participants active at a point in time",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery, // Defined in cmd_query.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"Emit logs as JSON records")

	inspectCmd.Flags().StringVar(&startTime, "start", "",
		"Scenario start time in RFC3339 (default: now, UTC)")
	queryCmd.Flags().StringVar(&queryAt, "at", "",
		"Query time: RFC3339, or an offset from start like 15s (default: start)")
	queryCmd.Flags().StringVar(&startTime, "start", "",
		"Scenario start time in RFC3339 (default: now, UTC)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(queryCmd)
}

func parseLogLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
