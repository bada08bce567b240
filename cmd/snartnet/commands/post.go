package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"snartnet/internal/api"
)

func postCmd() *cobra.Command {
	var (
		tags    []string
		attach  []string
		replyTo string
	)
	cmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Sign a post authored by the profile owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := api.CreatePostRequest{
				Content:          args[0],
				Tags:             tags,
				AttachmentHashes: attach,
			}
			if cmd.Flags().Changed("reply-to") {
				r.ReplyTo = &replyTo
			}
			req, err := json.Marshal(r)
			if err != nil {
				return err
			}
			out, err := appCtx.API.CreatePostJSON(req)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag (repeatable, order kept)")
	cmd.Flags().StringArrayVar(&attach, "attach", nil, "attachment content hash (repeatable)")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "id of the post being replied to")
	return cmd
}
