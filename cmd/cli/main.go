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
	session string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vat-bot-cli",
		Short: "VAT bot CLI tool",
		Long:  `A command line interface for the VAT bot REST API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the VAT bot API")
	rootCmd.PersistentFlags().StringVar(&session, "session", "cli", "Session key")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	sendCmd := &cobra.Command{
		Use:   "send [text...]",
		Short: "Ingest transaction lines",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sendMessage(strings.Join(args, "\n"))
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [period]",
		Short: "Show totals (YYYY-MM, YYYY, or current month and year)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			period := ""
			if len(args) > 0 {
				period = args[0]
			}
			showSummary(period)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the session ledger",
		Run: func(cmd *cobra.Command, args []string) {
			resetSession()
		},
	}

	rootCmd.AddCommand(sendCmd, summaryCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func sendMessage(text string) {
	payload, _ := json.Marshal(map[string]string{"text": text})
	client := &http.Client{Timeout: timeout}

	url := fmt.Sprintf("%s/api/v1/sessions/%s/messages", baseURL, session)
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printJSON(body)
}

func showSummary(period string) {
	client := &http.Client{Timeout: timeout}

	url := fmt.Sprintf("%s/api/v1/sessions/%s/summary", baseURL, session)
	if period != "" {
		url += "?period=" + period
	}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printJSON(body)
}

func resetSession() {
	client := &http.Client{Timeout: timeout}

	url := fmt.Sprintf("%s/api/v1/sessions/%s/entries", baseURL, session)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println("Ledger cleared")
}

func printJSON(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}
