package commands

import (
	"github.com/spf13/cobra"

	"snartnet/internal/domain"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate the signing key if none is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := appCtx.Session.EnsureKeyPair()
			if err != nil {
				return err
			}
			return printValue(cmd, kp.Info())
		},
	}
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the key fingerprint and public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := appCtx.Session.PublicKey()
			if err != nil {
				return err
			}
			fp, err := appCtx.Session.Fingerprint()
			if err != nil {
				return err
			}
			return printValue(cmd, domain.KeyInfo{PublicKey: pub, Fingerprint: fp})
		},
	}
}
