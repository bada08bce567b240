package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"snartnet/internal/api"
)

// optString returns a pointer to the flag value only when it was set, so an
// explicit empty value can clear a field.
func optString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func createProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-profile <username>",
		Short: "Create and sign a profile, generating a key if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := json.Marshal(api.CreateProfileRequest{
				Username:    args[0],
				DisplayName: optString(cmd.Flags(), "display-name"),
				Bio:         optString(cmd.Flags(), "bio"),
			})
			if err != nil {
				return err
			}
			out, err := appCtx.API.CreateProfileJSON(req)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().String("display-name", "", "display name")
	cmd.Flags().String("bio", "", "short biography")
	return cmd
}

func updateProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Change profile fields and re-sign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := api.UpdateProfileRequest{
				DisplayName: optString(cmd.Flags(), "display-name"),
				Bio:         optString(cmd.Flags(), "bio"),
				AvatarHash:  optString(cmd.Flags(), "avatar-hash"),
			}
			if r.DisplayName == nil && r.Bio == nil && r.AvatarHash == nil {
				return fmt.Errorf("nothing to update: set --display-name, --bio or --avatar-hash")
			}
			req, err := json.Marshal(r)
			if err != nil {
				return err
			}
			out, err := appCtx.API.UpdateProfileJSON(req)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().String("display-name", "", "display name (empty clears)")
	cmd.Flags().String("bio", "", "short biography (empty clears)")
	cmd.Flags().String("avatar-hash", "", "content hash of the avatar image")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the signed profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := appCtx.API.CurrentProfileJSON()
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}
