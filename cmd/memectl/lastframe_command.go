package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"memegen/internal/media"
)

func newLastFrameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lastframe <in.gif> <out.png>",
		Short: "Save the final frame of an animated GIF as PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := media.WriteLastFramePNG(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved last of %d frames to %s\n", frames, args[1])
			return nil
		},
	}
}
