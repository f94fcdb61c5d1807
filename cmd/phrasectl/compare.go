package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/phraseflash/internal/models"
)

var compareCmd = &cobra.Command{
	Use:   "compare ATTEMPT REFERENCE",
	Short: "Score one attempt against its reference and print the diff",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")
		result := newEngine().Compare(args[0], args[1], lang)
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().String("lang", "", "language tag of the reference (e.g. en, ja-JP)")
}

func printResult(w io.Writer, r models.CompareResult) {
	verdict := "incorrect"
	if r.Correct {
		verdict = "correct"
	}
	fmt.Fprintf(w, "similarity: %.1f%% (%s)\n", r.Similarity*100, verdict)
	fmt.Fprintf(w, "granularity: %s\n", r.Granularity)
	fmt.Fprintf(w, "diff: %s\n", renderDiff(r.Diff))
}

// renderDiff marks deleted reference text as [-x-] and inserted attempt
// text as {+x+}.
func renderDiff(spans []models.DiffSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Type {
		case models.DiffDelete:
			sb.WriteString("[-" + s.Value + "-]")
		case models.DiffInsert:
			sb.WriteString("{+" + s.Value + "+}")
		default:
			sb.WriteString(s.Value)
		}
	}
	return sb.String()
}
