// Command nlictl is a small operations CLI for a running nlid daemon.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/pkg/types"
)

type clientConfig struct {
	BaseURL string
	Timeout time.Duration
}

func defaultBaseURL() string {
	if v := os.Getenv("NLID_URL"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

func buildRootCmd(cfg *clientConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "nlictl",
		Short:         "Query a running nlid inference daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.BaseURL, "base-url", defaultBaseURL(), "Base URL of the nlid server (defaults NLID_URL)")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")

	healthCmd := &cobra.Command{Use: "health", Short: "Print the server health report", RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON(cfg, "/health", cmd.OutOrStdout())
	}}
	statusCmd := &cobra.Command{Use: "status", Short: "Print the server status snapshot", RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON(cfg, "/status", cmd.OutOrStdout())
	}}
	infoCmd := &cobra.Command{Use: "info", Short: "Print service metadata and endpoints", RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON(cfg, "/", cmd.OutOrStdout())
	}}

	predictCmd := &cobra.Command{
		Use:     "predict <premise> <hypothesis>",
		Short:   "Classify one premise/hypothesis pair",
		Example: `  nlictl predict "A man is playing guitar." "A person makes music."`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := types.PredictRequest{Premise: args[0], Hypothesis: args[1]}
			return postJSON(cfg, "/predict", req, cmd.OutOrStdout())
		},
	}

	var batchFile string
	batchCmd := &cobra.Command{
		Use:     "batch",
		Short:   "Classify pairs from a JSON file ({\"pairs\": [...]})",
		Example: "  nlictl batch -f pairs.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchFile == "" {
				return fmt.Errorf("batch requires -f <pairs.json>")
			}
			raw, err := os.ReadFile(batchFile)
			if err != nil {
				return fmt.Errorf("read %s: %w", batchFile, err)
			}
			var req types.BatchPredictRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parse %s: %w", batchFile, err)
			}
			return postJSON(cfg, "/batch_predict", req, cmd.OutOrStdout())
		},
	}
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "JSON file with a pairs array")

	root.AddCommand(healthCmd, statusCmd, infoCmd, predictCmd, batchCmd)
	return root
}

func getJSON(cfg *clientConfig, path string, out io.Writer) error {
	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Get(cfg.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp, out)
}

func postJSON(cfg *clientConfig, path string, body any, out io.Writer) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Post(cfg.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp, out)
}

// printResponse re-indents the server's JSON for the terminal and turns
// non-2xx statuses into errors after printing the body.
func printResponse(resp *http.Response, out io.Writer) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Write(raw)
	}
	fmt.Fprintln(out, pretty.String())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func main() {
	cfg := &clientConfig{}
	root := buildRootCmd(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nlictl:", err)
		os.Exit(1)
	}
}
