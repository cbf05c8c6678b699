// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/dispute"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

var disputeCmd = &cobra.Command{
	Use:   "dispute",
	Short: "File and resolve disputes over challenged observations",
}

var (
	fileChallenged string
	fileChallenger string
	fileURL        string
	fileOut        string
)

var disputeFileCmd = &cobra.Command{
	Use:   "file",
	Short: "File a new dispute over a challenged record, signed by this node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := loadKeyPair()
		if err != nil {
			return err
		}
		rec, err := dispute.NewRecord(dispute.NewDisputeID(), fileChallenged, fileChallenger, fileURL, time.Now().UTC(), kp.PublicKey().NodeID())
		if err != nil {
			return err
		}
		rec = rec.WithSignature(kp.SignBase64(rec.CanonicalText()))

		if fileOut == "" {
			return errs.New(errs.IllegalInput, "--out is required")
		}
		if err := os.WriteFile(fileOut, rec.FullText(), 0o644); err != nil {
			return errs.Wrapf(err, errs.IoError, "write dispute record %s", fileOut)
		}
		fmt.Printf("dispute_id: %s\n", rec.DisputeID)
		fmt.Printf("filed to %s\n", fileOut)
		return nil
	},
}

var (
	resolveDisputeID string
	resolveChallenged string
	resolveURL       string
)

var disputeResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a dispute by majority vote over every independent observation of the challenged URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadStore()
		idx, err := store.BuildIndex(s)
		if err != nil {
			return err
		}

		hashes := idx.HashesForURL(resolveURL)
		observations := make([]dispute.Observation, 0, len(hashes))
		seen := make(map[string]bool)
		for _, h := range hashes {
			rec, err := s.Load(h)
			if err != nil {
				return err
			}
			if seen[rec.NodeID()] {
				continue
			}
			seen[rec.NodeID()] = true
			observations = append(observations, dispute.Observation{NodeID: rec.NodeID(), Record: rec})
		}

		resolution, err := dispute.Resolve(resolveDisputeID, resolveChallenged, observations, time.Now().UTC())
		if err != nil {
			return err
		}
		fmt.Printf("outcome: %s\n", resolution.Outcome)
		fmt.Printf("observations_count: %d\n", resolution.ObservationsCount)
		for _, fc := range resolution.FieldConsensus {
			fmt.Printf("  %s: majority=%t value=%q\n", fc.Field, fc.HasMajority, fc.MajorityValue)
		}
		return nil
	},
}

func init() {
	disputeFileCmd.Flags().StringVar(&fileChallenged, "challenged-hash", "", "hash of the challenged record")
	disputeFileCmd.Flags().StringVar(&fileChallenger, "challenger-hash", "", "hash of the challenger's own conflicting record")
	disputeFileCmd.Flags().StringVar(&fileURL, "url", "", "the disputed URL")
	disputeFileCmd.Flags().StringVar(&fileOut, "out", "", "path to write the signed dispute record to")

	disputeResolveCmd.Flags().StringVar(&resolveDisputeID, "dispute-id", "", "the dispute being resolved")
	disputeResolveCmd.Flags().StringVar(&resolveChallenged, "challenged-node", "", "node_id of the challenged observation")
	disputeResolveCmd.Flags().StringVar(&resolveURL, "url", "", "the disputed URL")

	disputeCmd.AddCommand(disputeFileCmd, disputeResolveCmd)
}

// RegisterDispute adds dispute filing and resolution commands to the root CLI.
func RegisterDispute(root *cobra.Command) { root.AddCommand(disputeCmd) }
