// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - List the models available on the inference server.
//
// Command: models
// Flags:
//   --json              Output as JSON

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigchat/internal/util"
)

const modelNameWidth = 36

func (a *App) modelsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models on the inference server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				models, err := a.client().ListModels(cmd.Context())
				if err != nil {
					return err
				}
				return outputJSON(a.Out, models)
			}
			return a.printModels(cmd.Context(), a.Out, a.settings().Current().ModelName)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// printModels writes a table of server models, marking current.
func (a *App) printModels(ctx context.Context, w io.Writer, current string) error {
	models, err := a.client().ListModels(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No models installed. Pull one with: ollama pull <name>"))
		return nil
	}

	fmt.Fprintln(w, SectionStyle.Render(
		"  "+util.PadWidth("NAME", modelNameWidth)+" "+util.PadWidth("SIZE", 10)+" "+util.PadWidth("PARAMS", 8)+" MODIFIED"))

	now := time.Now()
	for _, m := range models {
		marker := "  "
		name := util.PadWidth(util.TruncateWidth(m.Name, modelNameWidth), modelNameWidth)
		if m.Name == current {
			marker = HighlightStyle.Render("* ")
			name = HighlightStyle.Render(name)
		}
		params := m.Details.ParameterSize
		if params == "" {
			params = "-"
		}
		fmt.Fprintf(w, "%s%s %s %s %s\n", marker, name,
			util.PadWidth(m.FormatSize(), 10),
			util.PadWidth(params, 8),
			DimStyle.Render(formatAge(m.ModifiedAt, now)))
	}
	return nil
}
