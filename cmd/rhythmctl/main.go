// Command rhythmctl is a thin demonstration CLI over the rhythm library.
// It carries no engine logic of its own: every subcommand is a direct
// call into rhythm, unit, zone, and clock.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-rhythm/rhythm"
	"github.com/go-rhythm/rhythm/clock"
	"github.com/go-rhythm/rhythm/zone"
)

var (
	logLevel string
	log      = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:   "rhythmctl",
		Short: "Inspect and convert rhythm time values from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log verbosity: trace, debug, info, warn, error")

	root.AddCommand(newNowCmd(), newParseCmd(), newConvertCmd(), newZoneCmd(), newShowCmd())

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("rhythmctl failed")
		os.Exit(1)
	}
}

func newNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current instant in ISO 8601",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := clock.Demotic()
			if err != nil {
				return err
			}
			s, err := rhythm.FormatISO(p)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <iso>",
		Short: "Parse an ISO 8601 string and print its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := rhythm.StandardContext()
			if err != nil {
				return err
			}
			p, err := rhythm.ParseISO(ctx, args[0])
			if err != nil {
				return err
			}
			log.WithField("input", args[0]).Debug("parsed ISO instant")
			fmt.Println(p.String())
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert an exact-rational duration between units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := rhythm.StandardContext()
			if err != nil {
				return err
			}
			d, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("rhythmctl: invalid value %q: %w", args[0], err)
			}
			n, ok := new(big.Int).SetString(d.Truncate(0).String(), 10)
			if !ok {
				return fmt.Errorf("rhythmctl: %q is not a whole number", args[0])
			}
			m, err := rhythm.NewMeasure(ctx, from, n)
			if err != nil {
				return err
			}
			converted, err := m.In(to)
			if err != nil {
				return err
			}
			fmt.Println(converted.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "second", "source unit")
	cmd.Flags().StringVar(&to, "to", "second", "destination unit")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <iso>",
		Short: "Print an ISO 8601 instant in long calendar form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := rhythm.StandardContext()
			if err != nil {
				return err
			}
			p, err := rhythm.ParseISO(ctx, args[0])
			if err != nil {
				return err
			}
			s, err := rhythm.FormatLong(p)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
}

func newZoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Inspect a zoneinfo entry",
	}

	localize := &cobra.Command{
		Use:   "localize <iso>",
		Short: "Report the UTC offset in effect for <iso> in this zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := c.Parent().Flag("name").Value.String()
			z, err := zone.Load(name)
			if err != nil {
				return err
			}
			ctx, err := rhythm.StandardContext()
			if err != nil {
				return err
			}
			p, err := rhythm.ParseISO(ctx, args[0])
			if err != nil {
				return err
			}
			unixC, err := ctx.ContainerOf("unix")
			if err != nil {
				return err
			}
			packed, err := unixC.Pack(p)
			if err != nil {
				return err
			}
			off := z.Localize(packed.(*big.Int).Int64())
			fmt.Printf("%s %+d\n", off.Designation, off.Seconds)
			return nil
		},
	}

	var zoneName string
	cmd.PersistentFlags().StringVar(&zoneName, "name", "UTC", "zoneinfo entry name, e.g. America/Los_Angeles")
	cmd.AddCommand(localize)
	return cmd
}
