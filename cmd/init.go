package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/misterclayt0n/mapty/internal/config"
	"github.com/misterclayt0n/mapty/internal/storage"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and prepare the workout store",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := config.Write(path, config.Default()); err != nil {
				return fmt.Errorf("Failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Config written to %s\n", path)
		}

		cfg, err := config.LoadConfigFrom(path)
		if err != nil {
			return fmt.Errorf("Failed to load config: %w", err)
		}
		if err := checkPersistent(cfg); err != nil {
			return err
		}

		st, err := storage.Open(cmd.Context(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("Failed to initialize storage: %w", err)
		}
		defer st.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Storage ready (%s backend)\n", cfg.Storage.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
