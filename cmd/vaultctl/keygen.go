// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	vault "github.com/qvault/crypto"
	vaultcfg "github.com/qvault/crypto/internal/config"
)

func newKeygenCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "generate a key pair (or symmetric key) for an algorithm-id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithmID == "" {
				algorithmID = vaultcfg.FromContext(cmd.Context()).Algorithm
			}
			pub, priv, err := vault.GenerateKeyPair(algorithmID)
			if err != nil {
				return err
			}
			defer priv.Close()

			privBytes, err := priv.ExportToHeap()
			if err != nil {
				return err
			}
			log.Infow("generated key pair", "algorithm", algorithmID)
			fmt.Printf("private: %s\n", hex.EncodeToString(privBytes))

			if pub != nil {
				defer pub.Close()
				pubBytes, err := pub.ExportToHeap()
				if err != nil {
					return err
				}
				fmt.Printf("public:  %s\n", hex.EncodeToString(pubBytes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "algorithm-id (default from qvault.toml)")
	return cmd
}
