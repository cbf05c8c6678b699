// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/exchange"
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Export and import self-verifying batch bundles for peer sync",
}

var (
	exportLinkFile      string
	exportManifestFile  string
	exportSignatureFile string
	exportOutDir        string
)

var exchangeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a batch's records, manifest, chain link, and signature to a bundle directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		linkData, err := os.ReadFile(exportLinkFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", exportLinkFile)
		}
		link, err := batchchain.ParseChainLink(linkData)
		if err != nil {
			return err
		}
		manifestData, err := os.ReadFile(exportManifestFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", exportManifestFile)
		}
		manifest, err := batchchain.ParseManifest(manifestData)
		if err != nil {
			return err
		}
		sigData, err := os.ReadFile(exportSignatureFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", exportSignatureFile)
		}
		signatureB64 := strings.TrimSpace(string(sigData))

		bundleDir, err := exchange.Export(exportOutDir, link, manifest, signatureB64, loadStore())
		if err != nil {
			return err
		}
		fmt.Printf("exported bundle to %s\n", bundleDir)
		return nil
	},
}

var (
	importBundleDir  string
	importPublisher  string
)

var exchangeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate a peer's exported bundle and store its records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loadLogger()
		receipt, err := exchange.ImportWithMetrics(importBundleDir, importPublisher, loadStore())
		if err != nil {
			return err
		}
		logger.Info("bundle import complete", "batch_id", receipt.BatchID, "valid", receipt.Valid, "imported", receipt.RecordsImported)
		fmt.Printf("batch_id: %s\n", receipt.BatchID)
		fmt.Printf("valid: %t\n", receipt.Valid)
		fmt.Printf("imported: %d, already_present: %d\n", receipt.RecordsImported, receipt.RecordsAlreadyPresent)
		for _, e := range receipt.Errors {
			fmt.Printf("  - %s\n", e)
		}
		if !receipt.Valid {
			return errs.New(errs.ValidationError, "bundle failed import validation")
		}
		return nil
	},
}

func init() {
	exchangeExportCmd.Flags().StringVar(&exportLinkFile, "link", "", "path to chain-link.txt")
	exchangeExportCmd.Flags().StringVar(&exportManifestFile, "manifest", "", "path to manifest.txt")
	exchangeExportCmd.Flags().StringVar(&exportSignatureFile, "signature", "", "path to signature.txt")
	exchangeExportCmd.Flags().StringVar(&exportOutDir, "out", ".", "directory to create the batch-{id} bundle under")

	exchangeImportCmd.Flags().StringVar(&importBundleDir, "bundle", "", "path to the batch-{id} bundle directory")
	exchangeImportCmd.Flags().StringVar(&importPublisher, "publisher-key", "", "publisher's base64 Ed25519 public key")

	exchangeCmd.AddCommand(exchangeExportCmd, exchangeImportCmd)
}

// RegisterExchange adds bundle export/import commands to the root CLI.
func RegisterExchange(root *cobra.Command) { root.AddCommand(exchangeCmd) }
