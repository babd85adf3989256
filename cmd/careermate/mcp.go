package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chinh13571113/careermate-web-sub001"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the CareerMate engine as an MCP Server over stdio.
This allows AI agents (like Claude Desktop) to drive mock interviews as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		slog.SetDefault(logger)

		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}

		eng, closer, err := buildEngine(cfg, logger)
		if err != nil {
			log.Fatalf("Error initializing engine: %v", err)
		}
		if closer != nil {
			defer closer()
		}

		srv := mcp.NewServer(eng, careermate.Version)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		slog.Info("Starting CareerMate MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP Server execution failed", "err", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
