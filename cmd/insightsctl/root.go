package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cadenceapp/cadence-insights-engine/internal/config"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

var (
	apiAddr  string
	apiToken string
)

var rootCmd = &cobra.Command{
	Use:   "insightsctl",
	Short: "Operator commands for the Cadence Insights Engine",
	Long: `insightsctl talks to a running engine over its HTTP API.

Without --token it signs a short-lived token itself, using the same
JWT_SECRET and JWT_ISSUER environment the server reads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "addr", "http://localhost:8080", "Base address of the engine API")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token. Minted locally when empty")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(recomputeCmd)
}

// resolveToken prefers the --token flag and otherwise mints one from the
// environment the server itself is configured with.
func resolveToken() (string, error) {
	if apiToken != "" {
		return apiToken, nil
	}

	cfg := config.Load()
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, 5*time.Minute)

	token, err := tokens.GenerateToken("insightsctl")
	if err != nil {
		return "", fmt.Errorf("minting token: %w", err)
	}
	return token, nil
}

func fetchBoard(method, path string) (*domain.RankingResult, error) {
	token, err := resolveToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, apiAddr+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", apiAddr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	var result domain.RankingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}

func printBoard(result *domain.RankingResult) {
	fmt.Printf("Period %s (%s .. %s)\n",
		result.Period,
		result.Range.From.Format(domain.DayFormat),
		result.Range.To.Format(domain.DayFormat))

	if result.TotalUsers == 0 {
		fmt.Println("No scores recorded for this period.")
		return
	}

	fmt.Printf("%d ranked user(s)\n\n", result.TotalUsers)
	fmt.Printf("%4s  %-28s  %5s\n", "RANK", "USER", "SCORE")
	for _, entry := range result.Rankings {
		fmt.Printf("%4d  %-28s  %5d\n", entry.Rank, entry.UserID, entry.Score)
	}
}
