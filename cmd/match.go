package cmd

import (
	"fmt"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/match"
	"github.com/dkoval/hirematch/internal/talentwire"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run resume-to-JD matches and inspect past runs",
}

var matchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Score all uploaded resumes against one saved job description",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		jds := cache.New("job descriptions", client.ListJDs, log)
		history := cache.New("match history", client.ListMatches, log)

		if _, err := jds.Refresh(cmd.Context()); err != nil {
			log.Fatal("fetching job descriptions", zap.Error(err))
		}

		jdID, _ := cmd.Flags().GetString("jd")
		if jdID == "" {
			jdID, err = selectJD(jds.Items())
			if err != nil {
				log.Fatal("selecting a job description", zap.Error(err))
			}
		}

		topK, _ := cmd.Flags().GetInt("top")

		orchestrator := match.NewOrchestrator(client, jds, history, log)

		results, err := orchestrator.Run(cmd.Context(), jdID, topK)
		if err != nil {
			log.Fatal("running the match", zap.Error(err))
		}

		if len(results) == 0 {
			fmt.Println("No resumes matched. Upload resumes first.")
			return
		}

		fmt.Printf("Top %d candidate(s) for JD %s:\n", len(results), jdID)
		printResults(results)
	},
}

var matchHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past match runs",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		entries, err := client.ListMatches(cmd.Context())
		if err != nil {
			log.Fatal("listing match history", zap.Error(err))
		}

		if len(entries) == 0 {
			fmt.Println("No match runs yet.")
			return
		}

		for _, entry := range entries {
			fmt.Printf("%s  %s  (%s)\n", entry.ID, entry.Profile, entry.CreatedAt)
			printResults(entry.Results)
		}
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.AddCommand(matchRunCmd)
	matchCmd.AddCommand(matchHistoryCmd)

	matchRunCmd.Flags().String("jd", "", "id of the saved job description to match against")
	matchRunCmd.Flags().Int("top", match.DefaultTopK, "number of top candidates to request")
}

func selectJD(jds []*talentwire.JobDescription) (string, error) {
	if len(jds) == 0 {
		return "", fmt.Errorf("no job descriptions saved, generate one first")
	}

	items := make([]string, 0, len(jds))
	for _, jd := range jds {
		items = append(items, fmt.Sprintf("%s  %s", jd.ID, jd.Profile))
	}

	jdPrompt := promptui.Select{
		Label: "Choose a job description to match against",
		Items: items,
	}

	i, _, err := jdPrompt.Run()
	if err != nil {
		return "", err
	}

	return jds[i].ID, nil
}

func printResults(results []*talentwire.MatchResult) {
	for _, r := range results {
		name := r.CandidateName
		if name == "" {
			name = r.Filename
		}

		line := fmt.Sprintf("  %-30s score %.1f", name, r.Score)
		if r.Reason != "" {
			line += "  " + r.Reason
		}
		fmt.Println(line)
	}
}
