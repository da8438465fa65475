package cmd

import (
	"fmt"

	"github.com/dkoval/hirematch/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const jdPreviewLimit = 1500

var jdCmd = &cobra.Command{
	Use:   "jd",
	Short: "Generate, save, and list job descriptions",
}

var jdGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a job description draft and optionally save it",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		profile, _ := cmd.Flags().GetString("profile")
		if profile == "" {
			profilePrompt := promptui.Prompt{Label: "Role profile"}
			profile, err = profilePrompt.Run()
			if err != nil {
				log.Fatal("reading profile", zap.Error(err))
			}
		}

		draft, err := client.GenerateJD(cmd.Context(), profile)
		if err != nil {
			log.Fatal("generating the job description", zap.Error(err))
		}

		fmt.Printf("--- draft for %q ---\n%s\n---\n", profile, draft)

		save := true
		if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
			save = false
		} else if autoSave, _ := cmd.Flags().GetBool("yes"); !autoSave {
			confirm := promptui.Select{
				Label: "Save this job description?",
				Items: []string{"Yes", "No"},
			}
			_, answer, err := confirm.Run()
			if err != nil {
				log.Fatal("reading confirmation", zap.Error(err))
			}
			save = answer == "Yes"
		}

		if !save {
			log.Info("draft discarded", zap.String("profile", profile))
			return
		}

		saved, err := client.SaveJD(cmd.Context(), profile, draft)
		if err != nil {
			log.Fatal("saving the job description", zap.Error(err))
		}

		log.Info("job description saved",
			zap.String("id", saved.ID),
			zap.String("profile", saved.Profile),
			zap.String("text", logger.TruncateForLog(saved.JDText, 120)),
		)
	},
}

var jdListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved job descriptions",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		jds, err := client.ListJDs(cmd.Context())
		if err != nil {
			log.Fatal("listing job descriptions", zap.Error(err))
		}

		if len(jds) == 0 {
			fmt.Println("No job descriptions saved yet.")
			return
		}

		for _, jd := range jds {
			fmt.Printf("%s  %s  (%s)\n", jd.ID, jd.Profile, jd.CreatedAt)
		}
	},
}

var jdShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the full text of one saved job description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		jds, err := client.ListJDs(cmd.Context())
		if err != nil {
			log.Fatal("listing job descriptions", zap.Error(err))
		}

		for _, jd := range jds {
			if jd.ID == args[0] {
				fmt.Printf("%s\n\n%s\n", jd.Profile, logger.TruncateForLog(jd.JDText, jdPreviewLimit))
				return
			}
		}

		log.Fatal("job description not found", zap.String("id", args[0]))
	},
}

func init() {
	rootCmd.AddCommand(jdCmd)
	jdCmd.AddCommand(jdGenerateCmd)
	jdCmd.AddCommand(jdListCmd)
	jdCmd.AddCommand(jdShowCmd)

	jdGenerateCmd.Flags().StringP("profile", "p", "", "role profile to generate the description for")
	jdGenerateCmd.Flags().BoolP("yes", "y", false, "save without asking for confirmation")
	jdGenerateCmd.Flags().Bool("no-save", false, "print the draft without saving it")
}
