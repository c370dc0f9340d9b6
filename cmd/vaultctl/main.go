// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command vaultctl is a thin driver over package vault: generate keys,
// encrypt/decrypt, sign/verify, and encapsulate/decapsulate from the
// command line, so the library has a runnable surface alongside its
// repo pairs every precompile package with an exercising driver.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := newRootCmd(logger.Sugar()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
