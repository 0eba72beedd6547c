// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/wallet-e2e/internal/observability"
	"github.com/xkilldash9x/wallet-e2e/pkg/config"
)

const envPrefix = "WALLET_E2E"

// NewRootCommand returns a fresh command tree. Each call is independent, so the
// interactive shell builds one per line.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

// newRootCmd builds the command tree and returns a pointer to the config that
// PersistentPreRunE loads, so tests can inspect it after execution.
func newRootCmd() (*cobra.Command, **config.Config) {
	var cfgFile string
	var appConfig *config.Config

	rootCmd := &cobra.Command{
		Use:           "wallet-e2e",
		Short:         "Browser automation core for wallet extension end-to-end tests.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			appConfig = cfg

			// Logs go to stderr; stdout carries command output.
			observability.Initialize(cfg.Logger(), zapcore.Lock(os.Stderr))
			observability.GetLogger().Debug("Configuration loaded.",
				zap.String("version", Version),
				zap.String("config_file", v.ConfigFileUsed()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml or $HOME/.wallet-e2e/config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	rootCmd.AddCommand(
		newResolveCmd(),
		newConfigCmd(&appConfig),
		newVersionCmd(),
	)
	return rootCmd, &appConfig
}

// Execute runs the command tree against os.Args and logs a failure once.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger := observability.GetLogger()
		logger.Error("Command execution failed.", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	observability.Sync()
	return err
}

// initializeConfig points v at the config file and environment. A missing
// config file is not an error; defaults and env vars still apply.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if dir, err := config.ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
