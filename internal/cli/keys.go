// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate and inspect Ed25519 node key pairs",
}

var keysGenerateOut string

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh node key pair and write it to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := signing.Generate()
		if err != nil {
			return err
		}
		if keysGenerateOut == "" {
			return errs.New(errs.IllegalInput, "--out is required")
		}
		if err := os.WriteFile(keysGenerateOut, []byte(kp.PrivateKeyBase64()+"\n"), 0o600); err != nil {
			return errs.Wrapf(err, errs.IoError, "write key file %s", keysGenerateOut)
		}
		fmt.Printf("node_id: %s\n", kp.PublicKey().NodeID())
		fmt.Printf("public_key: %s\n", kp.PublicKey().Base64())
		fmt.Printf("key written to %s\n", keysGenerateOut)
		return nil
	},
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the node_id and public key derived from --node-key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := loadKeyPair()
		if err != nil {
			return err
		}
		fmt.Printf("node_id: %s\n", kp.PublicKey().NodeID())
		fmt.Printf("public_key: %s\n", kp.PublicKey().Base64())
		return nil
	},
}

func init() {
	keysGenerateCmd.Flags().StringVar(&keysGenerateOut, "out", "", "path to write the new private key to")
	keysCmd.AddCommand(keysGenerateCmd, keysShowCmd)
}

// RegisterKeys adds key-management commands to the root CLI.
func RegisterKeys(root *cobra.Command) { root.AddCommand(keysCmd) }
