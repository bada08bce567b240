package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"snartnet/internal/address"
	"snartnet/internal/domain"
)

func magnetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "magnet",
		Short: "Print the content address of the signed profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, ok := appCtx.Session.CurrentProfile()
			if !ok {
				return fmt.Errorf("%w: no profile", domain.ErrNoIdentity)
			}
			uri, err := address.MagnetURI(sp.Value)
			if err != nil {
				return err
			}
			hash, _, err := address.ParseMagnetURI(uri)
			if err != nil {
				return err
			}
			return printValue(cmd, map[string]any{
				"magnetUri": uri,
				"hash":      hash,
				"version":   sp.Value.Version,
				"current":   sp.Value.MagnetURI != nil && *sp.Value.MagnetURI == uri,
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "parse <uri>",
		Short: "Split a profile magnet URI into hash and username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, username, err := address.ParseMagnetURI(args[0])
			if err != nil {
				return err
			}
			return printValue(cmd, map[string]string{"hash": hash, "username": username})
		},
	})
	return cmd
}

func capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Print the JSON entry point capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := appCtx.API.CapabilitiesJSON()
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}
