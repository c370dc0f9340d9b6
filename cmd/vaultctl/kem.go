// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	vault "github.com/qvault/crypto"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/sdc"
)

func newEncapsulateCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID, pubHex string

	cmd := &cobra.Command{
		Use:   "encapsulate",
		Short: "encapsulate a shared secret against a KEM public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubBytes, err := hex.DecodeString(pubHex)
			if err != nil {
				return fmt.Errorf("--public-key: %w", err)
			}
			pub, err := sdc.NewFrom(pubBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer pub.Close()

			k, err := vault.KEM(algorithmID)
			if err != nil {
				return err
			}
			composite, err := k.Encapsulate(pub)
			if err != nil {
				return err
			}
			defer composite.Close()

			secret, err := composite.ExportToHeap()
			if err != nil {
				return err
			}
			log.Infow("encapsulated", "algorithm", algorithmID)
			fmt.Printf("shared_secret: %s\n", hex.EncodeToString(secret))

			for i := 0; i < composite.ChildCount(); i++ {
				child, err := composite.Child(i)
				if err != nil {
					return err
				}
				childBytes, err := child.ExportToHeap()
				if err != nil {
					return err
				}
				fmt.Printf("child[%d]:      %s\n", i, hex.EncodeToString(childBytes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "KEM algorithm-id")
	cmd.Flags().StringVar(&pubHex, "public-key", "", "hex-encoded public key")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("public-key")
	return cmd
}

func newDecapsulateCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID, privHex, ctHex string

	cmd := &cobra.Command{
		Use:   "decapsulate",
		Short: "recover a shared secret from a KEM ciphertext",
		RunE: func(cmd *cobra.Command, args []string) error {
			privBytes, err := hex.DecodeString(privHex)
			if err != nil {
				return fmt.Errorf("--private-key: %w", err)
			}
			ctBytes, err := hex.DecodeString(ctHex)
			if err != nil {
				return fmt.Errorf("--ciphertext: %w", err)
			}

			priv, err := sdc.NewFrom(privBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer priv.Close()
			ct, err := sdc.NewFrom(ctBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer ct.Close()

			k, err := vault.KEM(algorithmID)
			if err != nil {
				return err
			}
			secret, err := k.Decapsulate(priv, ct)
			if err != nil {
				return err
			}
			defer secret.Close()

			secretBytes, err := secret.ExportToHeap()
			if err != nil {
				return err
			}
			log.Infow("decapsulated", "algorithm", algorithmID)
			fmt.Printf("shared_secret: %s\n", hex.EncodeToString(secretBytes))
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "KEM algorithm-id")
	cmd.Flags().StringVar(&privHex, "private-key", "", "hex-encoded private key")
	cmd.Flags().StringVar(&ctHex, "ciphertext", "", "hex-encoded ciphertext")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("private-key")
	_ = cmd.MarkFlagRequired("ciphertext")
	return cmd
}
