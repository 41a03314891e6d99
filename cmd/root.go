package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/logger"
)

const (
	app       = "hire-picker"
	envPrefix = "HIRE_PICKER"
)

var (
	// Used for flags.
	cfgFile         string
	weightOverrides map[string]string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hire-picker ranks candidates and assembles a hiring team under location and budget constraints",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hire-picker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file")
	rootCmd.PersistentFlags().StringP("candidates", "c", "", "candidates JSON file")
	rootCmd.PersistentFlags().BoolP("ignore-exclude-file", "f", false, "do not drop candidates listed in the exclude file")
	rootCmd.PersistentFlags().StringToStringVarP(&weightOverrides, "weights", "w", nil, "override scoring weights, e.g. skill-match=0.5,recency=0")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("candidates", rootCmd.PersistentFlags().Lookup("candidates"))
	viper.BindPFlag("ignore-exclude-file", rootCmd.PersistentFlags().Lookup("ignore-exclude-file"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Without an explicit --config the defaults are enough to run.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func newLogger() *zap.Logger {
	outputs := []string{"stdout"}
	if file := viper.GetString("log-file"); file != "" {
		outputs = append(outputs, file)
	}

	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), outputs...)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}
