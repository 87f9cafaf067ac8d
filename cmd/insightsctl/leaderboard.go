package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [period]",
	Short: "Print the stored board for an ISO week (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLeaderboard,
}

func runLeaderboard(_ *cobra.Command, args []string) error {
	period := "current"
	if len(args) == 1 {
		period = args[0]
	}

	board, err := fetchBoard(http.MethodGet, "/api/v1/leaderboard/"+period)
	if err != nil {
		return err
	}

	printBoard(board)
	return nil
}
