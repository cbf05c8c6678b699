// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/verifychain"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Verify batch chain links and their publisher signatures",
}

var (
	chainLinkFile      string
	chainManifestFile  string
	chainSignatureFile string
	chainPublisherKey  string
)

var chainVerifyLinkCmd = &cobra.Command{
	Use:   "verify-link",
	Short: "Recompute a chain link's derived fields and check its publisher signature",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		linkData, err := os.ReadFile(chainLinkFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", chainLinkFile)
		}
		link, err := batchchain.ParseChainLink(linkData)
		if err != nil {
			return err
		}

		manifestData, err := os.ReadFile(chainManifestFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", chainManifestFile)
		}
		manifest, err := batchchain.ParseManifest(manifestData)
		if err != nil {
			return err
		}

		sigData, err := os.ReadFile(chainSignatureFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", chainSignatureFile)
		}
		signatureB64 := strings.TrimSpace(string(sigData))

		result := verifychain.VerifyChainLink(link, manifest, signatureB64, chainPublisherKey)
		if result.Valid {
			fmt.Println("VALID")
			return nil
		}
		fmt.Println("INVALID")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return errs.New(errs.ValidationError, "chain link failed verification")
	},
}

func init() {
	chainVerifyLinkCmd.Flags().StringVar(&chainLinkFile, "link", "", "path to chain-link.txt")
	chainVerifyLinkCmd.Flags().StringVar(&chainManifestFile, "manifest", "", "path to manifest.txt")
	chainVerifyLinkCmd.Flags().StringVar(&chainSignatureFile, "signature", "", "path to signature.txt")
	chainVerifyLinkCmd.Flags().StringVar(&chainPublisherKey, "publisher-key", "", "publisher's base64 Ed25519 public key")
	chainCmd.AddCommand(chainVerifyLinkCmd)
}

// RegisterChain adds batch-chain verification commands to the root CLI.
func RegisterChain(root *cobra.Command) { root.AddCommand(chainCmd) }
