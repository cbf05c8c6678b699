// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Register node identity and verify self-signed node profiles",
}

var (
	registerBootstrapFile  string
	registerRegistrationOut string
	registerAttestationOut string
)

var profileRegisterCmd = &cobra.Command{
	Use:   "register-node",
	Short: "Build and sign a Registration (and Attestation, if node.yaml declares domains) from this node's key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := loadKeyPair()
		if err != nil {
			return err
		}
		bf, err := profile.LoadBootstrapFile(registerBootstrapFile)
		if err != nil {
			return err
		}
		p, err := profile.Bootstrap(bf, kp, time.Now().UTC())
		if err != nil {
			return err
		}

		if registerRegistrationOut == "" {
			return errs.New(errs.IllegalInput, "--registration-out is required")
		}
		if err := os.WriteFile(registerRegistrationOut, p.Registration.FullText(), 0o644); err != nil {
			return errs.Wrapf(err, errs.IoError, "write registration to %s", registerRegistrationOut)
		}
		fmt.Printf("node_id: %s\n", p.Registration.NodeID)
		fmt.Printf("registration written to %s\n", registerRegistrationOut)

		if p.Attestation != nil {
			if registerAttestationOut == "" {
				return errs.New(errs.IllegalInput, "--attestation-out is required when node.yaml declares domains")
			}
			if err := os.WriteFile(registerAttestationOut, p.Attestation.FullText(), 0o644); err != nil {
				return errs.Wrapf(err, errs.IoError, "write attestation to %s", registerAttestationOut)
			}
			fmt.Printf("attestation written to %s\n", registerAttestationOut)
		}
		return nil
	},
}

var (
	verifyRegistrationFile string
	verifyAttestationFile  string
)

var profileVerifyCmd = &cobra.Command{
	Use:   "verify-profile",
	Short: "Verify a node's registration (and attestation, if present) using only their own contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		regData, err := os.ReadFile(verifyRegistrationFile)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s", verifyRegistrationFile)
		}
		reg, err := profile.ParseRegistration(regData)
		if err != nil {
			return err
		}

		var att *profile.Attestation
		if verifyAttestationFile != "" {
			attData, err := os.ReadFile(verifyAttestationFile)
			if err != nil {
				return errs.Wrapf(err, errs.IoError, "read %s", verifyAttestationFile)
			}
			att, err = profile.ParseAttestation(attData)
			if err != nil {
				return err
			}
		}

		p, err := profile.NewProfile(reg, att)
		if err != nil {
			return err
		}

		result := profile.Verify(p)
		if result.Valid {
			fmt.Println("VALID")
			return nil
		}
		fmt.Println("INVALID")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return errs.New(errs.ValidationError, "profile failed verification")
	},
}

func init() {
	profileRegisterCmd.Flags().StringVar(&registerBootstrapFile, "bootstrap", "", "path to node.yaml")
	profileRegisterCmd.Flags().StringVar(&registerRegistrationOut, "registration-out", "", "path to write the signed registration to")
	profileRegisterCmd.Flags().StringVar(&registerAttestationOut, "attestation-out", "", "path to write the signed attestation to")

	profileVerifyCmd.Flags().StringVar(&verifyRegistrationFile, "registration", "", "path to a signed registration file")
	profileVerifyCmd.Flags().StringVar(&verifyAttestationFile, "attestation", "", "path to a signed attestation file (optional)")

	profileCmd.AddCommand(profileRegisterCmd, profileVerifyCmd)
}

// RegisterProfile adds node-identity commands to the root CLI.
func RegisterProfile(root *cobra.Command) { root.AddCommand(profileCmd) }
