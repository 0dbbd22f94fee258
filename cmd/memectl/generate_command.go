package main

import (
	"github.com/spf13/cobra"

	"memegen/internal/domain"
	"memegen/internal/generation"
)

type outcomeOutput struct {
	Success        bool   `json:"success"`
	GeneratedImage string `json:"generated_image,omitempty"`
	Error          string `json:"error,omitempty"`
	Category       string `json:"category,omitempty"`
	Status         int    `json:"status"`
	Attempts       int    `json:"attempts"`
	ElapsedMS      int64  `json:"elapsed_ms"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var userID, image string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a meme from a template and wait for the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withGateway(cmd.Context(), func(gw *generation.Gateway) error {
				return printOutcome(cmd, gw.Generate(cmd.Context(), userID, image))
			})
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Session (user) id")
	cmd.Flags().StringVarP(&image, "image", "i", "", "Template image reference")
	return cmd
}

func newRegenerateCommand(ctx *commandContext) *cobra.Command {
	var userID, directive, element string

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Regenerate the current meme with a style, add or remove directive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withGateway(cmd.Context(), func(gw *generation.Gateway) error {
				out := gw.Regenerate(cmd.Context(), userID, domain.Directive(directive), element)
				return printOutcome(cmd, out)
			})
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Session (user) id")
	cmd.Flags().StringVarP(&directive, "directive", "d", "", "One of style, add, remove")
	cmd.Flags().StringVarP(&element, "element", "e", "", "Element to add or remove")
	return cmd
}

// printOutcome writes the outcome and turns a failed session into exit code 2.
func printOutcome(cmd *cobra.Command, out generation.Outcome) error {
	if err := writeJSON(cmd, outcomeOutput{
		Success:        out.OK,
		GeneratedImage: out.ArtifactRef,
		Error:          out.Message,
		Category:       string(out.Category),
		Status:         out.HTTPStatus(),
		Attempts:       out.Attempts,
		ElapsedMS:      out.Elapsed.Milliseconds(),
	}); err != nil {
		return err
	}
	if !out.OK {
		return exitError{code: 2}
	}
	return nil
}
