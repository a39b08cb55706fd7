// Command trackingcopy is a small demo CLI around the TrackingCopy overlay:
// it seeds an in-memory state reader from a YAML snapshot, runs a fixed
// write, add and read against it, and prints the resulting execution
// effect. It runs no query.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"globalstate/core"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "trackingcopy",
		Short: "run write/add/read operations against a TrackingCopy overlay",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level (debug, info, warn, error)")
	root.AddCommand(runCmd())
	return root
}

// snapshotEntry is the YAML-decodable form of one global-state seed entry.
type snapshotEntry struct {
	Account string `yaml:"account,omitempty"`
	Hash    string `yaml:"hash,omitempty"`
	Int32   *int32 `yaml:"int32,omitempty"`
}

func runCmd() *cobra.Command {
	var snapshotPath string
	var maxCacheSize int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "seed an overlay from a snapshot file and run a fixed demo script",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, snapshotPath, maxCacheSize)
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "path to a YAML snapshot of seed key/value pairs (optional)")
	cmd.Flags().IntVar(&maxCacheSize, "max-cache-size", core.DefaultMaxCacheSize, "read-cache bound, in bytes")
	return cmd
}

func runDemo(cmd *cobra.Command, snapshotPath string, maxCacheSize int) error {
	seed := map[core.Key]core.Value{}
	if snapshotPath != "" {
		raw, err := os.ReadFile(snapshotPath)
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		var entries map[string]snapshotEntry
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return fmt.Errorf("parse snapshot: %w", err)
		}
		for name, e := range entries {
			if e.Int32 == nil {
				continue
			}
			var addr core.Address
			copy(addr[:], name)
			seed[core.NewAccountKey(addr)] = core.NewInt32Value(*e.Int32)
		}
	}

	reader := core.NewInMemoryStateReader(seed)
	tc := core.NewTrackingCopyWithCache(reader, maxCacheSize, core.HeapSizeMeter{})
	cid := core.NewCorrelationID()

	var demoAddr core.Address
	copy(demoAddr[:], "demo")
	key, err := core.NewValidated(core.NewAccountKey(demoAddr), core.Valid[core.Key])
	if err != nil {
		return err
	}
	value, err := core.NewValidated(core.NewInt32Value(1), core.Valid[core.Value])
	if err != nil {
		return err
	}

	tc.Write(key, value)
	logrus.Infof("wrote initial value under correlation %s", cid)

	addend, err := core.NewValidated(core.NewInt32Value(41), core.Valid[core.Value])
	if err != nil {
		return err
	}
	result, err := tc.Add(cid, key, addend)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "add result: %s\n", result)

	v, found, err := tc.Read(cid, key)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "current value: %s\n", v.DebugString())
	}

	effect := tc.Effect()
	fmt.Fprintf(cmd.OutOrStdout(), "effect touched %d key(s)\n", len(effect.Ops))
	for k, op := range effect.Ops {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", k, op)
	}
	return nil
}
