// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// settings.go - Settings management command for rigchat.
//
// Command: settings [subcommand]
//
// Subcommands:
//   show                Show saved settings (API key redacted)
//   path                Print the settings file path
//   validate            Check the settings file
//   get <key>           Print one setting
//   set <key> [value]   Change one setting; api_key prompts when no value
//   reset               Restore defaults
//
// Examples:
//   rigchat settings set model_name llama3
//   rigchat settings set parameters.temperature 0.2
//   rigchat settings set api_key

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jeranaias/rigchat/internal/config"
)

func (a *App) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved settings",
		Long: fmt.Sprintf(`Show or change saved settings.

Keys use dot notation for nested values:
  %s

Environment overrides (never saved): %s, %s, %s, %s, %s.`,
			strings.Join(config.Keys(), "\n  "),
			config.EnvEndpoint, config.EnvAPIKey, config.EnvModel, config.EnvTheme, config.EnvSavePath),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showSettings(false)
		},
	}

	var effective bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show saved settings (API key redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showSettings(effective)
		},
	}
	show.Flags().BoolVar(&effective, "effective", false, "Include environment and flag overrides")

	cmd.AddCommand(
		show,
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprintln(a.Out, a.store.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check the settings file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.validateSettings()
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s := a.store.Current()
				v, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if isAPIKey(args[0]) && v != "" {
					v = "[REDACTED]"
				}
				fmt.Fprintln(a.Out, v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> [value]",
			Short: "Change one setting",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.setSetting(args)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := a.store.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(a.Out, SuccessStyle.Render("Settings reset to defaults."))
				return nil
			},
		},
	)
	return cmd
}

func (a *App) showSettings(effective bool) error {
	s := a.store.Current()
	if effective {
		s = a.settings().Current()
	}
	fmt.Fprintln(a.Out, s.String())
	return nil
}

func (a *App) validateSettings() error {
	_, err := a.store.Inspect()
	switch {
	case err == nil:
		fmt.Fprintln(a.Out, RenderStatus(true)+" "+a.store.Path())
		return nil
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(a.Out, DimStyle.Render("No settings file at "+a.store.Path()+"; defaults in use."))
		return nil
	}

	var verr config.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(a.Out, RenderStatus(false)+" "+a.store.Path())
		for _, fe := range verr {
			fmt.Fprintln(a.Out, "  "+RenderLabel(fe.Field)+ErrorStyle.Render(fe.Message))
		}
		return &ExitError{Code: ExitConfigError, Err: err, Silent: true}
	}
	return &ExitError{Code: ExitConfigError, Err: err}
}

func (a *App) setSetting(args []string) error {
	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		v, err := a.promptValue(key)
		if err != nil {
			return err
		}
		value = v
	}

	s := a.store.Current()
	if err := s.Set(key, value); err != nil {
		return err
	}
	if err := a.store.Save(s); err != nil {
		return err
	}

	shown := value
	if isAPIKey(key) && value != "" {
		shown = "[REDACTED]"
	}
	fmt.Fprintln(a.Out, SuccessStyle.Render(fmt.Sprintf("Set %s = %s", key, shown)))
	return nil
}

// promptValue reads a missing value. Only the API key may be entered this
// way; on a terminal it is read without echo.
func (a *App) promptValue(key string) (string, error) {
	if !isAPIKey(key) {
		return "", &UsageError{Message: "missing value; usage: rigchat settings set <key> <value>"}
	}
	if f, ok := a.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.ErrOut, "API key: ")
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.ErrOut)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}
	line, err := readLine(a.In)
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isAPIKey(key string) bool {
	k := strings.ToLower(strings.ReplaceAll(key, "-", "_"))
	return k == "api_key" || k == "apikey"
}
