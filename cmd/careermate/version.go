package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Chinh13571113/careermate-web-sub001"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of careermate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("careermate version %s\n", strings.TrimSpace(careermate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
