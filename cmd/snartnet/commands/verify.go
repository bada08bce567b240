package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"snartnet/internal/api"
	"snartnet/internal/crypto"
)

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <file|->",
		Short: "Sign arbitrary data with the local key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			sig, err := appCtx.Session.SignData(data)
			if err != nil {
				return err
			}
			pub, err := appCtx.Session.PublicKey()
			if err != nil {
				return err
			}
			return printValue(cmd, map[string]string{"signature": sig, "publicKey": pub})
		},
	}
}

func verifyCmd() *cobra.Command {
	var (
		publicKey string
		signature string
	)
	cmd := &cobra.Command{
		Use:   "verify <profile|post|message|data> <file|->",
		Short: "Verify a signed entity or raw data",
		Long: "Verify a signed profile against its embedded key, a post or message " +
			"against --public-key, or raw data against --signature and --public-key. " +
			"Exits non-zero when the signature does not verify.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"profile", "post", "message", "data"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			if publicKey == "" && args[0] != "profile" {
				if publicKey, err = appCtx.Session.PublicKey(); err != nil {
					return fmt.Errorf("--public-key required: %w", err)
				}
			}

			var res api.VerifyResult
			switch args[0] {
			case "profile":
				res, err = appCtx.API.VerifyProfileJSON(data)
			case "post":
				res, err = appCtx.API.VerifyPostJSON(data, publicKey)
			case "message":
				res, err = appCtx.API.VerifyMessageJSON(data, publicKey)
			case "data":
				ok := crypto.Verify(data, signature, publicKey)
				appCtx.Metrics.ObserveVerification("data", ok)
				res = api.VerifyResult{Valid: ok, Entity: "data"}
			default:
				return fmt.Errorf("unknown kind %q (want profile, post, message or data)", args[0])
			}
			if err != nil {
				return err
			}
			if err := printValue(cmd, res); err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("%s signature does not verify", res.Entity)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&publicKey, "public-key", "", "base64 public key (default: local key)")
	cmd.Flags().StringVar(&signature, "signature", "", "base64 signature, for data")
	return cmd
}
