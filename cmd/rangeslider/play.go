package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-rangeslider/pkg/tui"
)

func playCmd() *cobra.Command {
	var params paramFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Drive the control from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, bag, err := params.resolve(cmd.Context(), nil)
			if err != nil {
				return err
			}
			pg := tui.NewPlayground(bag,
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithLogger(logger()),
			)
			outputs, err := pg.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "final: %v / %v\n", outputs.SelectedLowerValue, outputs.SelectedUpperValue)
			return nil
		},
	}
	params.register(cmd)
	return cmd
}
