package control

import (
	"fmt"
	"strings"

	"voxnote/internal/config"
	"voxnote/internal/i18n"

	"github.com/spf13/cobra"
)

// NewLangCmd groups language subcommands.
func NewLangCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lang",
		Short:   "Show or switch the UI language (en, ar)",
		Aliases: []string{"language"},
	}
	cmd.AddCommand(newLangGetCmd(cfgPath))
	cmd.AddCommand(newLangSetCmd(cfgPath))
	return cmd
}

func newLangGetCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			lang, err := i18n.ParseLanguage(cfg.UI.Lang)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s, %s)\n", lang.Tag(), lang.Hint(), lang.Direction())
			return nil
		},
	}
}

// newLangSetCmd persists the preference and updates a running daemon.
func newLangSetCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <en|ar>",
		Short: "Switch the UI language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := strings.ToLower(strings.TrimSpace(args[0]))
			lang, err := i18n.ParseLanguage(tag)
			if err != nil {
				return err
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			cfg.UI.Lang = lang.Tag()
			if err := config.Save(cfg, cfg.Paths.ConfigPath); err != nil {
				return err
			}
			// Daemon follows if it is up; otherwise the saved preference is
			// picked up on the next start.
			if res, err := roundTrip(cfg, Request{Op: "lang", Arg: lang.Tag()}); err == nil && res.Message != "" {
				fmt.Println(res.Message)
			}
			fmt.Printf("language set to %s in %s\n", lang.Tag(), cfg.Paths.ConfigPath)
			return nil
		},
	}
}
