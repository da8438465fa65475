package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a talentwire account",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()

		client, _, err := newClient(logger)
		if err != nil {
			logger.Fatal("building the client", zap.Error(err))
		}

		username, password, err := promptCredentials()
		if err != nil {
			logger.Fatal("reading credentials", zap.Error(err))
		}

		if err := client.Register(cmd.Context(), username, password); err != nil {
			logger.Fatal("registering", zap.Error(err))
		}

		logger.Info("account created", zap.String("username", username))
		fmt.Printf("Account %q created. Run '%s login' to sign in.\n", username, app)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()

		client, store, err := newClient(logger)
		if err != nil {
			logger.Fatal("building the client", zap.Error(err))
		}

		username, password, err := promptCredentials()
		if err != nil {
			logger.Fatal("reading credentials", zap.Error(err))
		}

		token, err := client.Login(cmd.Context(), username, password)
		if err != nil {
			logger.Fatal("logging in", zap.Error(err))
		}

		if err := store.Set(token, username); err != nil {
			logger.Fatal("persisting the session", zap.Error(err))
		}

		logger.Info("logged in", zap.String("username", username))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted session",
	Run: func(_ *cobra.Command, _ []string) {
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		store, err := newSessionStore(config)
		if err != nil {
			logger.Fatal("resolving the session file", zap.Error(err))
		}

		if err := store.Clear(); err != nil {
			logger.Fatal("clearing the session", zap.Error(err))
		}

		logger.Info("logged out")
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func promptCredentials() (string, string, error) {
	usernamePrompt := promptui.Prompt{
		Label: "Username",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("username is required")
			}
			return nil
		},
	}

	username, err := usernamePrompt.Run()
	if err != nil {
		return "", "", err
	}

	passwordPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			return nil
		},
	}

	password, err := passwordPrompt.Run()
	if err != nil {
		return "", "", err
	}

	return strings.TrimSpace(username), password, nil
}
