package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Tavola ledger CLI tool",
		Long:  `A command line interface for interacting with the Tavola ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd(), postCmd(), ledgerCmd(), chartCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Chart of accounts operations",
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Show an account by code or name",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiGet("/api/v1/accounts/" + args[0])
		},
	}

	var asOf string
	balanceCmd := &cobra.Command{
		Use:   "balance <key>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/accounts/" + args[0] + "/balance"
			if asOf != "" {
				path += "?as_of=" + asOf
			}
			apiGet(path)
		},
	}
	balanceCmd.Flags().StringVar(&asOf, "as-of", "", "Balance cutoff (RFC 3339)")

	cmd.AddCommand(getCmd, balanceCmd)
	return cmd
}

func postCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post journal events",
	}

	var amounts []string
	var refType, refID string
	eventCmd := &cobra.Command{
		Use:   "event <template>",
		Short: "Post a named journal event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bag, err := parseAmounts(amounts)
			if err != nil {
				return err
			}

			payload := map[string]any{
				"template": args[0],
				"amounts":  bag,
			}
			if refType != "" {
				payload["reference_type"] = refType
			}
			if refID != "" {
				payload["reference_id"] = refID
			}

			apiPost("/api/v1/postings/events", payload)
			return nil
		},
	}
	eventCmd.Flags().StringArrayVar(&amounts, "amount", nil, "Amount as name=value (repeatable)")
	eventCmd.Flags().StringVar(&refType, "ref-type", "", "Reference type")
	eventCmd.Flags().StringVar(&refID, "ref-id", "", "Reference ID")

	cmd.AddCommand(eventCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check system-wide debits equal credits",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	var date string
	trialBalanceCmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Show the trial balance",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/ledger/trial-balance"
			if date != "" {
				path += "?date=" + date
			}
			apiGet(path)
		},
	}
	trialBalanceCmd.Flags().StringVar(&date, "date", "", "Report date (RFC 3339)")

	cmd.AddCommand(consistencyCmd, trialBalanceCmd)
	return cmd
}

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart of accounts reports",
	}

	var asOf string
	var includeZero bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the chart as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/chart/export"
			sep := "?"
			if asOf != "" {
				path += sep + "as_of=" + asOf
				sep = "&"
			}
			if includeZero {
				path += sep + "include_zero=true"
			}

			body, status := request(http.MethodGet, path, nil)
			if status != http.StatusOK {
				fmt.Printf("Export failed (Status: %d)\n%s\n", status, string(body))
				os.Exit(1)
			}
			fmt.Print(string(body))
		},
	}
	exportCmd.Flags().StringVar(&asOf, "as-of", "", "Report cutoff (RFC 3339)")
	exportCmd.Flags().BoolVar(&includeZero, "include-zero", false, "Include zero-balance accounts")

	cmd.AddCommand(exportCmd)
	return cmd
}

func parseAmounts(pairs []string) (map[string]string, error) {
	bag := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid amount %q, expected name=value", pair)
		}
		bag[name] = value
	}
	return bag, nil
}

func checkConsistency() {
	body, status := request(http.MethodGet, "/api/v1/ledger/consistency", nil)
	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Consistent bool `json:"consistent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if result.Consistent {
		fmt.Println("Consistency check PASSED")
	} else {
		fmt.Println("Consistency check FAILED: debits do not equal credits")
		os.Exit(1)
	}
}

func apiGet(path string) {
	body, status := request(http.MethodGet, path, nil)
	if status < 200 || status >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, truncate(string(body), 500))
		os.Exit(1)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(decoded)
}

func apiPost(path string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	body, status := request(http.MethodPost, path, data)
	if status < 200 || status >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, truncate(string(body), 500))
		os.Exit(1)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(decoded)
}

func request(method, path string, payload []byte) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
