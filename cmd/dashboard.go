package cmd

import (
	"errors"
	"fmt"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/dashboard"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show all three collections in one view",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()

		client, store, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		jds := cache.New("job descriptions", client.ListJDs, log)
		resumes := cache.New("resumes", client.ListResumes, log)
		history := cache.New("match history", client.ListMatches, log)

		controller := dashboard.NewController(store, jds, resumes, history, log)

		state, err := controller.Open(cmd.Context())
		if err != nil {
			if errors.Is(err, dashboard.ErrLoginRequired) {
				log.Fatal("not logged in", zap.String("hint", fmt.Sprintf("run '%s login' first", app)))
			}
			log.Fatal("opening the dashboard", zap.Error(err))
		}

		fmt.Printf("Welcome back, %s!\n\n", state.Identity)

		for _, panel := range []dashboard.Panel{state.JDs, state.Resumes, state.Matches} {
			if panel.Err != nil {
				fmt.Printf("%-18s unavailable (%s)\n", panel.Name, panel.Err)
				continue
			}
			fmt.Printf("%-18s %d\n", panel.Name, panel.Count)
		}

		if state.JDs.Err == nil && state.JDs.Count > 0 {
			fmt.Println("\nSaved job descriptions:")
			for _, jd := range jds.Items() {
				fmt.Printf("  %s  %s  (%s)\n", jd.ID, jd.Profile, jd.CreatedAt)
			}
		}

		if state.Resumes.Err == nil && state.Resumes.Count > 0 {
			fmt.Println("\nResumes:")
			for _, r := range resumes.Items() {
				fmt.Printf("  %s  %s  (%s)\n", r.ID, r.Filename, r.CreatedAt)
			}
		}

		if state.Matches.Err == nil && state.Matches.Count > 0 {
			fmt.Println("\nMatch history:")
			for _, entry := range history.Items() {
				fmt.Printf("  %s  %s  (%s)\n", entry.ID, entry.Profile, entry.CreatedAt)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
