package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored interview sessions",
	Long:  `List, inspect, and remove interview sessions from the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store, closer := getStore(cmd)
		if closer != nil {
			defer closer()
		}

		owner, _ := cmd.Flags().GetString("owner")
		status, _ := cmd.Flags().GetString("status")

		sessions, err := store.List(cmd.Context(), ports.ListFilter{OwnerID: owner, Status: domain.Status(status)})
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return
		}

		for _, s := range sessions {
			line := fmt.Sprintf("- %s  %s  %d/%d answered  %s",
				s.ID, s.Status, s.AnsweredCount(), len(s.Turns), s.CreatedAt.Format("2006-01-02 15:04"))
			if s.AverageScore != nil {
				line += fmt.Sprintf("  avg %.1f", *s.AverageScore)
			}
			fmt.Println(line)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		store, closer := getStore(cmd)
		if closer != nil {
			defer closer()
		}

		session, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling session: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closer := getStore(cmd)
		if closer != nil {
			defer closer()
		}
		hasError := false

		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionLsCmd.Flags().String("owner", "", "Only list sessions for this owner")
	sessionLsCmd.Flags().String("status", "", "Only list sessions with this status (ongoing|completed)")
}

func getStore(cmd *cobra.Command) (ports.SessionStore, func() error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	store, _, closer, err := buildStore(cfg)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	return store, closer
}
