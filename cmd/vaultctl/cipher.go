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
	"github.com/qvault/crypto/strategy"
)

// resolveCipher returns a strategy.Cipher for algorithmID, applying mode
// and padding if algorithmID's strategy also satisfies BlockCipher, and
// AAD if it satisfies AEADCipher. This lets one command path serve block,
// stream, and AEAD ciphers alike without the caller needing to know which
// capability a given algorithm-id carries.
func resolveCipher(algorithmID, mode, padding string, aad []byte) (strategy.Cipher, error) {
	if bc, err := vault.BlockCipher(algorithmID); err == nil {
		if mode != "" {
			bc = bc.SetMode(mode)
		}
		if padding != "" {
			bc = bc.SetPadding(padding)
		}
		return bc, nil
	}
	if ac, err := vault.AEADCipher(algorithmID); err == nil {
		if len(aad) > 0 {
			ac = ac.UpdateAAD(aad)
		}
		return ac, nil
	}
	return vault.Cipher(algorithmID)
}

func newEncryptCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID, keyHex, plainHex, mode, padding, aadHex string
	var chainIV bool

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "encrypt plaintext under a symmetric key",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyBytes, err := hex.DecodeString(keyHex)
			if err != nil {
				return fmt.Errorf("--key: %w", err)
			}
			plainBytes, err := hex.DecodeString(plainHex)
			if err != nil {
				return fmt.Errorf("--in: %w", err)
			}
			var aad []byte
			if aadHex != "" {
				aad, err = hex.DecodeString(aadHex)
				if err != nil {
					return fmt.Errorf("--aad: %w", err)
				}
			}

			key, err := sdc.NewFrom(keyBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer key.Close()
			plain, err := sdc.NewFrom(plainBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer plain.Close()

			c, err := resolveCipher(algorithmID, mode, padding, aad)
			if err != nil {
				return err
			}
			out, err := c.Encrypt(key, plain, chainIV)
			if err != nil {
				return err
			}
			defer out.Close()

			outBytes, err := out.ExportToHeap()
			if err != nil {
				return err
			}
			log.Infow("encrypted", "algorithm", algorithmID, "bytes", len(outBytes))
			fmt.Println(hex.EncodeToString(outBytes))
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "algorithm-id")
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded key")
	cmd.Flags().StringVar(&plainHex, "in", "", "hex-encoded plaintext")
	cmd.Flags().StringVar(&mode, "mode", "", "block-cipher mode (CBC, CTR, AEAD-GCM, ...)")
	cmd.Flags().StringVar(&padding, "padding", "", "block-cipher padding (PKCS7, NONE, ...)")
	cmd.Flags().StringVar(&aadHex, "aad", "", "hex-encoded associated data (AEAD only)")
	cmd.Flags().BoolVar(&chainIV, "chain-iv", true, "prepend the IV to the output (IV chaining)")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newDecryptCmd(log *zap.SugaredLogger) *cobra.Command {
	var algorithmID, keyHex, cipherHex, mode, padding, aadHex string
	var inferIV bool

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "decrypt ciphertext under a symmetric key",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyBytes, err := hex.DecodeString(keyHex)
			if err != nil {
				return fmt.Errorf("--key: %w", err)
			}
			cipherBytes, err := hex.DecodeString(cipherHex)
			if err != nil {
				return fmt.Errorf("--in: %w", err)
			}
			var aad []byte
			if aadHex != "" {
				aad, err = hex.DecodeString(aadHex)
				if err != nil {
					return fmt.Errorf("--aad: %w", err)
				}
			}

			key, err := sdc.NewFrom(keyBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer key.Close()
			ct, err := sdc.NewFrom(cipherBytes, false, arena.Auto)
			if err != nil {
				return err
			}
			defer ct.Close()

			c, err := resolveCipher(algorithmID, mode, padding, aad)
			if err != nil {
				return err
			}
			out, err := c.Decrypt(key, ct, inferIV)
			if err != nil {
				return err
			}
			defer out.Close()

			outBytes, err := out.ExportToHeap()
			if err != nil {
				return err
			}
			log.Infow("decrypted", "algorithm", algorithmID, "bytes", len(outBytes))
			fmt.Println(hex.EncodeToString(outBytes))
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithmID, "algorithm", "", "algorithm-id")
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded key")
	cmd.Flags().StringVar(&cipherHex, "in", "", "hex-encoded ciphertext")
	cmd.Flags().StringVar(&mode, "mode", "", "block-cipher mode")
	cmd.Flags().StringVar(&padding, "padding", "", "block-cipher padding")
	cmd.Flags().StringVar(&aadHex, "aad", "", "hex-encoded associated data (AEAD only)")
	cmd.Flags().BoolVar(&inferIV, "infer-iv", true, "consume the leading IV from --in")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
