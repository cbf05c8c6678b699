// Copyright 2025 Truthcrawl Contributors
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "truthcrawl",
		Short: "Verify, exchange, and dispute crawl observations across independent nodes",
	}
	root.PersistentFlags().StringVar(&cli.DataDir, "data-dir", "", "record store root (defaults to $TRUTHCRAWL_DATA_DIR)")
	root.PersistentFlags().StringVar(&cli.NodeKeyPath, "node-key", "", "path to this node's base64 Ed25519 private key file")

	cli.RegisterKeys(root)
	cli.RegisterRecords(root)
	cli.RegisterChain(root)
	cli.RegisterVerify(root)
	cli.RegisterExchange(root)
	cli.RegisterDispute(root)
	cli.RegisterProfile(root)
	cli.RegisterServe(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
