// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	vaultcfg "github.com/qvault/crypto/internal/config"
)

func newRootCmd(log *zap.SugaredLogger) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "vaultctl drives the qvault strategy registry from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			cmd.SetContext(vaultcfg.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to qvault.toml (default: $HOME_DIR/qvault.toml)")

	root.AddCommand(
		newKeygenCmd(log),
		newEncryptCmd(log),
		newDecryptCmd(log),
		newSignCmd(log),
		newVerifyCmd(log),
		newEncapsulateCmd(log),
		newDecapsulateCmd(log),
	)
	return root
}

// loadConfig reads the optional qvault.toml from HOME_DIR (or an explicit
// --config path) with viper + mapstructure. The core library never
// requires this file to function; vaultctl only uses it to default
// keygen's --algorithm when the caller omits it.
func loadConfig(explicitPath string) (vaultcfg.Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("algorithm", "AES-256")
	v.SetDefault("arena", "auto")

	path := explicitPath
	if path == "" {
		home := os.Getenv("HOME_DIR")
		if home == "" {
			return vaultcfg.Config{Algorithm: v.GetString("algorithm"), Arena: v.GetString("arena")}, nil
		}
		path = filepath.Join(home, "qvault.toml")
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return vaultcfg.Config{Algorithm: v.GetString("algorithm"), Arena: v.GetString("arena")}, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return vaultcfg.Config{Algorithm: v.GetString("algorithm"), Arena: v.GetString("arena")}, nil
		}
		return vaultcfg.Config{}, err
	}

	return decodeConfig(v.AllSettings())
}

// decodeConfig runs viper's merged settings map through mapstructure
// directly rather than viper's own Unmarshal wrapper, with
// WeaklyTypedInput so a TOML value like arena = 1 still decodes into the
// string field, and ErrorUnused so a typo'd key in qvault.toml surfaces
// as a load error instead of silently being ignored.
func decodeConfig(settings map[string]any) (vaultcfg.Config, error) {
	var cfg vaultcfg.Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return vaultcfg.Config{}, err
	}
	if err := decoder.Decode(settings); err != nil {
		return vaultcfg.Config{}, err
	}
	return cfg, nil
}
