package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute [period]",
	Short: "Rebuild the board for an ISO week (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecompute,
}

func runRecompute(_ *cobra.Command, args []string) error {
	period := "current"
	if len(args) == 1 {
		period = args[0]
	}

	board, err := fetchBoard(http.MethodPost, "/api/v1/leaderboard/"+period+"/recompute")
	if err != nil {
		return err
	}

	fmt.Println("Recompute complete.")
	printBoard(board)
	return nil
}
