package control

import (
	"fmt"
	"os"
	"strings"
	"time"

	"voxnote/internal/config"
	"voxnote/internal/export"
	"voxnote/internal/i18n"
	"voxnote/internal/logging"
	"voxnote/internal/transcribe"

	"github.com/spf13/cobra"
)

// NewRecordCmd groups recording subcommands (daemon required).
func NewRecordCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Start or stop microphone recording",
	}
	cmd.AddCommand(newRecordStartCmd(cfgPath))
	cmd.AddCommand(newRecordStopCmd(cfgPath))
	return cmd
}

func newRecordStartCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a recording session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			res, err := roundTrip(cfg, Request{Op: "record-start"})
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newRecordStopCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop recording and transcribe the clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			hint, _ := cmd.Flags().GetString("hint")
			res, err := roundTrip(cfg, Request{Op: "record-stop", Hint: hint})
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	cmd.Flags().String("hint", "", "language hint forwarded verbatim to the service (default: current UI language)")
	return cmd
}

// NewTranscribeCmd transcribes an audio file. It goes through the daemon
// when one is running so the shared transcript updates; otherwise it calls
// the service directly.
func NewTranscribeCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <audiofile>",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return err
			}
			hint, _ := cmd.Flags().GetString("hint")

			if res, err := roundTrip(cfg, Request{Op: "transcribe", Arg: path, Hint: hint}); err == nil {
				return printResult(cmd, res)
			}

			// No daemon: one-shot call.
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			backend, err := transcribe.New(cfg, logger)
			if err != nil {
				return err
			}
			lang := currentLang(cfg)
			if strings.TrimSpace(hint) == "" {
				hint = lang.Hint()
			}
			text, err := backend.Transcribe(cmd.Context(), path, hint)
			if err != nil {
				logger.Errorf("transcribe %s: %v", path, err)
				fmt.Fprintln(cmd.OutOrStdout(), lang.T("error_transcription"))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().String("hint", "", "language hint forwarded verbatim to the service (default: current UI language)")
	return cmd
}

// NewURLCmd is the URL submission placeholder.
func NewURLCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "url <audio-url>",
		Short: "Submit an audio URL (placeholder)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			lang := currentLang(cfg)
			if strings.TrimSpace(args[0]) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), lang.T("error_url_empty"))
				return fmt.Errorf("empty url")
			}
			if res, err := roundTrip(cfg, Request{Op: "url", Arg: args[0]}); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			}
			// No daemon: same fixed delay and notice.
			time.Sleep(1500 * time.Millisecond)
			fmt.Fprintln(cmd.OutOrStdout(), lang.T("url_not_supported"))
			return nil
		},
	}
}

// NewCopyCmd copies the daemon's transcript to the clipboard.
func NewCopyCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the current transcript to the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			status, err := fetchStatus(cfg)
			if err != nil {
				return err
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			lang, _ := i18n.ParseLanguage(status.Lang)
			if msg := export.CopyToClipboard(status.Transcript, lang, logger); msg != "" {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return nil
		},
	}
}

// NewExportCmd saves the daemon's transcript as transcription.txt.
func NewExportCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the current transcript to transcription.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			status, err := fetchStatus(cfg)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				if dir, err = os.Getwd(); err != nil {
					return err
				}
			}
			lang, _ := i18n.ParseLanguage(status.Lang)
			msg, path, err := export.SaveTranscript(status.Transcript, dir, lang)
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", msg, path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return nil
		},
	}
	cmd.Flags().String("dir", "", "directory for the exported file (default: current directory)")
	return cmd
}

// NewTextCmd replaces the transcript, for edits between transcriptions.
func NewTextCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "text \"edited transcript\"",
		Short: "Replace the current transcript text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			res, err := roundTrip(cfg, Request{Op: "text", Arg: args[0]})
			if err != nil {
				return err
			}
			if !res.OK {
				return fmt.Errorf("%s", res.Message)
			}
			return nil
		},
	}
}

func currentLang(cfg *config.Config) i18n.Language {
	lang, err := i18n.ParseLanguage(cfg.UI.Lang)
	if err != nil {
		return i18n.English
	}
	return lang
}
