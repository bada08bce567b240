package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"snartnet/internal/services/identity"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import an identity backup",
	}

	var noProfile bool
	export := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the key pair and profile to a backup file (sealed with -p)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := appCtx.Session.ExportBackup(!noProfile)
			if err != nil {
				return err
			}
			data, err := identity.EncodeBackup(b, appCtx.Config.Passphrase)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return err
			}
			return printValue(cmd, b.Metadata)
		},
	}
	export.Flags().BoolVar(&noProfile, "no-profile", false, "back up the key pair only")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the local identity with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			b, err := identity.DecodeBackup(data, appCtx.Config.Passphrase)
			if err != nil {
				return err
			}
			if err := appCtx.Session.ImportBackup(b); err != nil {
				return err
			}
			return printValue(cmd, b.Metadata)
		},
	}

	cmd.AddCommand(export, importCmd)
	return cmd
}

func mnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Export or import the signing key as BIP-39 words",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "export",
			Short: "Print the 24 recovery words",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				words, err := appCtx.Session.ExportMnemonic()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), words)
				return err
			},
		},
		&cobra.Command{
			Use:   "import [words...]",
			Short: "Restore the signing key from recovery words (stdin when none given)",
			RunE: func(cmd *cobra.Command, args []string) error {
				words := strings.Join(args, " ")
				if words == "" {
					line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if err != nil && err != io.EOF {
						return err
					}
					words = line
				}
				kp, err := appCtx.Session.RestoreFromMnemonic(words)
				if err != nil {
					return err
				}
				return printValue(cmd, kp.Info())
			},
		},
	)
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored key pair and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the identity without --yes")
			}
			if err := appCtx.Session.Reset(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "identity removed")
			return err
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
