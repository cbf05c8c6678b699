// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect observation records in the local store",
}

var recordsShowCmd = &cobra.Command{
	Use:   "show [hash]",
	Short: "Print a stored record's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := loadStore().Load(args[0])
		if err != nil {
			if errors.Is(err, errs.New(errs.NotFound, "")) {
				return errs.Newf(errs.NotFound, "no record stored for hash %s", args[0])
			}
			return err
		}
		fmt.Printf("url: %s\n", rec.URL())
		fmt.Printf("final_url: %s\n", rec.FinalURL())
		fmt.Printf("status_code: %d\n", rec.StatusCode())
		fmt.Printf("content_hash: %s\n", rec.ContentHash())
		fmt.Printf("node_id: %s\n", rec.NodeID())
		fmt.Printf("observed_at: %s\n", rec.ObservedAt().Format("2006-01-02T15:04:05Z"))
		fmt.Printf("directive:canonical: %s\n", rec.DirectiveCanonical())
		fmt.Printf("directive:robots_meta: %s\n", rec.DirectiveRobotsMeta())
		fmt.Printf("directive:robots_header: %s\n", rec.DirectiveRobotsHeader())
		for _, link := range rec.Links() {
			fmt.Printf("link: %s\n", link)
		}
		return nil
	},
}

var recordsForURLCmd = &cobra.Command{
	Use:   "for-url [url]",
	Short: "List every record hash observed for a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := store.BuildIndex(loadStore())
		if err != nil {
			return err
		}
		for _, hash := range idx.HashesForURL(args[0]) {
			fmt.Println(hash)
		}
		return nil
	},
}

func init() {
	recordsCmd.AddCommand(recordsShowCmd, recordsForURLCmd)
}

// RegisterRecords adds record-inspection commands to the root CLI.
func RegisterRecords(root *cobra.Command) { root.AddCommand(recordsCmd) }
