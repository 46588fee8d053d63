// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Connection and settings summary.
//
// Command: status
// Flags:
//   --json              Output as JSON
//
// Exits with ExitNetworkError (5) when the server does not answer.

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/ollama"
)

// StatusInfo is the machine-readable status report.
type StatusInfo struct {
	Endpoint     string `json:"endpoint"`
	Reachable    bool   `json:"reachable"`
	Error        string `json:"error,omitempty"`
	LatencyMS    int64  `json:"latency_ms"`
	Model        string `json:"model"`
	Theme        string `json:"theme"`
	SavePath     string `json:"save_path"`
	SettingsFile string `json:"settings_file"`
	FileExists   bool   `json:"settings_file_exists"`
	APIKeySet    bool   `json:"api_key_set"`
}

func (a *App) statusCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the inference server and show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := a.collectStatus(cmd)
			if asJSON {
				if err := outputJSON(a.Out, info); err != nil {
					return err
				}
			} else {
				printStatus(a.Out, info)
			}
			if !info.Reachable {
				return &ExitError{Code: ExitNetworkError, Err: errors.New(info.Error), Silent: true}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func (a *App) collectStatus(cmd *cobra.Command) StatusInfo {
	s := a.settings().Current()
	info := StatusInfo{
		Endpoint:     s.APIEndpoint,
		Model:        s.ModelName,
		Theme:        s.Theme,
		SavePath:     s.SavePath,
		SettingsFile: a.store.Path(),
		APIKeySet:    s.APIKey != "",
	}
	if _, err := os.Stat(a.store.Path()); err == nil {
		info.FileExists = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		info.Error = err.Error()
	}

	client := ollama.NewClientWithConfig(ollama.ConfigFromSettings(s))
	start := time.Now()
	err := client.CheckRunning(cmd.Context())
	info.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		info.Error = describeStatusError(err, s)
		return info
	}
	info.Reachable = true
	return info
}

func describeStatusError(err error, s config.Settings) string {
	switch ollama.TypeOf(err) {
	case ollama.ErrTypeConnection:
		return "cannot connect to " + s.APIEndpoint
	case ollama.ErrTypeTimeout:
		return fmt.Sprintf("no answer within %s", s.RequestTimeout())
	case ollama.ErrTypeUnauthorized:
		return "the server rejected the API key"
	default:
		return err.Error()
	}
}

func printStatus(w io.Writer, info StatusInfo) {
	fmt.Fprintln(w, TitleStyle.Render("rigchat status"))

	fmt.Fprintln(w, SectionStyle.Render("Server"))
	fmt.Fprintln(w, "  "+RenderLabel("Endpoint")+ValueStyle.Render(info.Endpoint))
	if info.Reachable {
		fmt.Fprintln(w, "  "+RenderLabel("Connection")+RenderStatus(true)+" "+
			DimStyle.Render(fmt.Sprintf("%dms", info.LatencyMS)))
	} else {
		fmt.Fprintln(w, "  "+RenderLabel("Connection")+RenderStatus(false)+" "+ErrorStyle.Render(info.Error))
	}

	fmt.Fprintln(w, SectionStyle.Render("Settings"))
	fmt.Fprintln(w, "  "+RenderLabel("Model")+ValueStyle.Render(info.Model))
	fmt.Fprintln(w, "  "+RenderLabel("Theme")+ValueStyle.Render(info.Theme))
	fmt.Fprintln(w, "  "+RenderLabel("Save path")+ValueStyle.Render(info.SavePath))
	key := "not set"
	if info.APIKeySet {
		key = "set"
	}
	fmt.Fprintln(w, "  "+RenderLabel("API key")+ValueStyle.Render(key))
	file := info.SettingsFile
	if !info.FileExists {
		file += DimStyle.Render(" (not created, defaults in use)")
	}
	fmt.Fprintln(w, "  "+RenderLabel("Settings file")+ValueStyle.Render(file))
	fmt.Fprintln(w, rule(40))
}
