package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/dkoval/hirematch/internal/logger"
	"github.com/dkoval/hirematch/internal/session"
	"github.com/dkoval/hirematch/internal/talentwire"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "hirematch"
)

type Config struct {
	APIURL      string `mapstructure:"api-url"`
	UserAgent   string `mapstructure:"user-agent"`
	SessionFile string `mapstructure:"session-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hirematch is a cli for generating job descriptions and matching uploaded resumes against them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env may carry HIREMATCH_API_URL during development.
	_ = godotenv.Load()

	if err := viper.BindEnv("api-url", "HIREMATCH_API_URL"); err != nil {
		log.Fatalf("binding HIREMATCH_API_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hirematch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", "", "base URL of the talentwire service")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional; flags and env cover everything it holds.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// newLogger builds the zap logger from the persistent flags.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	return l
}

// newSessionStore resolves the session file location, preferring the
// configured path over the per-user default.
func newSessionStore(config *Config) (*session.Store, error) {
	path := config.SessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	return session.New(path), nil
}

// newClient assembles the API client from config, flags, and the session.
func newClient(l *zap.Logger) (*talentwire.Client, *session.Store, error) {
	config, err := getConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("getting a config: %w", err)
	}

	store, err := newSessionStore(config)
	if err != nil {
		return nil, nil, err
	}

	client := talentwire.New(l, store)

	if config.APIURL != "" {
		client.APIURL = config.APIURL
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client, store, nil
}
