package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"snartnet/internal/api"
)

// message <recipient> <content>: sign a message to a recipient fingerprint.
func messageCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "message <recipient-fingerprint> <content>",
		Short: "Sign a direct or group message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := api.CreateMessageRequest{
				RecipientFingerprint: args[0],
				Content:              args[1],
			}
			if cmd.Flags().Changed("group") {
				r.GroupID = &group
			}
			req, err := json.Marshal(r)
			if err != nil {
				return err
			}
			out, err := appCtx.API.CreateMessageJSON(req)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "group id; makes a group message")
	return cmd
}
