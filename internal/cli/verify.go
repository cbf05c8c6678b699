// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/pipeline"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/vstatus"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run cross-node sampled verification over a batch",
}

var (
	verifyManifestFile string
	verifyMerkleRoot   string
	verifySeed         string
	verifySampleSize   int
	verifyMinObs       int
	verifyStatusDir    string
)

var verifyRunCmd = &cobra.Command{
	Use:   "run [batch-id]",
	Short: "Sample a batch's manifest, compare against independent observations, and persist the outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batchID := args[0]
		logger := loadLogger()
		logger.Info("starting verification run", "batch_id", batchID)

		manifestData, err := os.ReadFile(verifyManifestFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", verifyManifestFile)
		}
		manifest, err := batchchain.ParseManifest(manifestData)
		if err != nil {
			return err
		}

		cfg := loadConfig()
		sampleSize := verifySampleSize
		if sampleSize == 0 {
			sampleSize = cfg.SampleSize
		}
		minObs := verifyMinObs
		if minObs == 0 {
			minObs = cfg.MinObservations
		}

		in := pipeline.Input{
			BatchID:         batchID,
			Manifest:        manifest,
			MerkleRoot:      verifyMerkleRoot,
			UserSeed:        verifySeed,
			Store:           loadStore(),
			MaxSampleSize:   sampleSize,
			MinObservations: minObs,
		}
		report, err := pipeline.RunWithMetrics(in)
		if err != nil {
			return err
		}
		logger.Info("verification run complete", "batch_id", batchID, "matched", report.Matched, "mismatched", report.Mismatched, "unverifiable", report.Unverifiable)

		fmt.Println(pipeline.HealthSummary(report))
		for _, hash := range report.MismatchedHashes {
			fmt.Printf("  mismatched: %s\n", hash)
		}

		status, err := vstatus.FromPipelineResult(report, manifest.Size(), time.Now().UTC())
		if err != nil {
			return err
		}
		if verifyStatusDir != "" {
			if err := vstatus.NewStore(verifyStatusDir).Save(status); err != nil {
				return err
			}
		}
		fmt.Printf("batch_status: %s (%s)\n", status.BatchStatus, vstatus.Describe(status.BatchStatus))
		return nil
	},
}

func init() {
	verifyRunCmd.Flags().StringVar(&verifyManifestFile, "manifest", "", "path to the batch's manifest.txt")
	verifyRunCmd.Flags().StringVar(&verifyMerkleRoot, "merkle-root", "", "the batch's merkle_root (hex)")
	verifyRunCmd.Flags().StringVar(&verifySeed, "seed", "", "user-supplied sampling seed")
	verifyRunCmd.Flags().IntVar(&verifySampleSize, "sample-size", 0, "number of records to sample (default from config)")
	verifyRunCmd.Flags().IntVar(&verifyMinObs, "min-observations", 0, "minimum independent observations required (default from config)")
	verifyRunCmd.Flags().StringVar(&verifyStatusDir, "status-dir", "", "directory to persist the write-once verification status in")
	verifyCmd.AddCommand(verifyRunCmd)
}

// RegisterVerify adds verification-pipeline commands to the root CLI.
func RegisterVerify(root *cobra.Command) { root.AddCommand(verifyCmd) }
