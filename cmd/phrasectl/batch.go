package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/practice"
	"github.com/vytor/phraseflash/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a JSON-lines file of {attempt, reference, lang} records",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		workers, _ := cmd.Flags().GetInt("workers")
		if workers <= 0 {
			workers = cfg.BatchWorkers
		}

		var r io.Reader = cmd.InOrStdin()
		if in != "" && in != "-" {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		requests, err := readRequests(r)
		if err != nil {
			return err
		}
		logger.Default().Info("scoring %d records with %d workers", len(requests), workers)

		results, err := worker.ScoreAll(cmd.Context(), newEngine(), requests, workers)
		if err != nil {
			return err
		}
		return writeResults(cmd.OutOrStdout(), results)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("in", "-", "input file, - for stdin")
	batchCmd.Flags().Int("workers", 0, "number of workers (defaults to BATCH_WORKERS)")
}

func readRequests(r io.Reader) ([]models.CompareRequest, error) {
	var requests []models.CompareRequest
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var req models.CompareRequest
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !practice.WithinLimit(req.Attempt) || !practice.WithinLimit(req.Reference) {
			return nil, fmt.Errorf("line %d: text longer than %d characters", line, practice.MaxTextRunes)
		}
		requests = append(requests, req)
	}
	return requests, sc.Err()
}

func writeResults(w io.Writer, results []models.CompareResult) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}
