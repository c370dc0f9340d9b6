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

func newSignCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID, privHex, msgHex string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "sign a message, printing the signature as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			privBytes, err := hex.DecodeString(privHex)
			if err != nil {
				return fmt.Errorf("--private-key: %w", err)
			}
			msgBytes, err := hex.DecodeString(msgHex)
			if err != nil {
				return fmt.Errorf("--message: %w", err)
			}

			priv, err := sdc.NewFrom(privBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer priv.Close()

			s, err := vault.Signature(algorithmID)
			if err != nil {
				return err
			}
			composite, err := s.Sign(priv, msgBytes)
			if err != nil {
				return err
			}
			defer composite.Close()

			sigBytes, err := composite.ExportToHeap()
			if err != nil {
				return err
			}
			log.Infow("signed", "algorithm", algorithmID, "signature_bytes", len(sigBytes))
			fmt.Printf("signature: %s\n", hex.EncodeToString(sigBytes))
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "signature algorithm-id")
	cmd.Flags().StringVar(&privHex, "private-key", "", "hex-encoded private key")
	cmd.Flags().StringVar(&msgHex, "message", "", "hex-encoded message")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("private-key")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newVerifyCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID, pubHex, msgHex, sigHex string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a signature over a message under a public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubBytes, err := hex.DecodeString(pubHex)
			if err != nil {
				return fmt.Errorf("--public-key: %w", err)
			}
			msgBytes, err := hex.DecodeString(msgHex)
			if err != nil {
				return fmt.Errorf("--message: %w", err)
			}
			sigBytes, err := hex.DecodeString(sigHex)
			if err != nil {
				return fmt.Errorf("--signature: %w", err)
			}

			root, err := sdc.NewFrom(sigBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer root.Close()
			if _, err := root.AddChildFrom(msgBytes, false, arena.Auto); err != nil {
				return err
			}
			if _, err := root.AddChildFrom(pubBytes, false, arena.Auto); err != nil {
				return err
			}

			s, err := vault.Signature(algorithmID)
			if err != nil {
				return err
			}
			valid, err := s.Verify(root)
			if err != nil {
				return err
			}
			log.Infow("verified", "algorithm", algorithmID, "valid", valid)
			fmt.Println(valid)
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "signature algorithm-id")
	cmd.Flags().StringVar(&pubHex, "public-key", "", "hex-encoded public key")
	cmd.Flags().StringVar(&msgHex, "message", "", "hex-encoded message")
	cmd.Flags().StringVar(&sigHex, "signature", "", "hex-encoded signature")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("public-key")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
