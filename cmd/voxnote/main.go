package main

import (
	"fmt"
	"os"

	"voxnote/internal/control"
	"voxnote/internal/daemon"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	root := &cobra.Command{
		Use:   "voxnote",
		Short: "Voxnote — voice note transcription daemon",
		Long: `Voxnote records from your mic or takes audio files, sends them to a remote
transcription service (Gemini or OpenAI), and keeps the result as an editable
transcript you can copy or export. The UI speaks English and Arabic.

Key commands:
  start|stop|restart        Daemon lifecycle
  record start|stop         Record a clip, transcribe on stop
  transcribe <file>         Transcribe an audio file
  url <audio-url>           Submit an audio URL (placeholder)
  text|copy|export          Edit, copy, or save the transcript
  lang get|set              Show or switch UI language (en, ar)
  mic list|set              Select microphone
  doctor                    Check deps / API key / clipboard
  service install|uninstall|status   launchd helper (macOS)
  health|tail-log|status    Liveness, log tail, daemon state

Notable flags/env:
  --metrics-addr <addr>     Enable /metrics (Prometheus text)
  Env overrides: VOXNOTE_LANG, VOXNOTE_PROVIDER, VOXNOTE_METRICS_ADDR,
                 VOXNOTE_LOG_LEVEL/FORMAT, GEMINI_API_KEY, OPENAI_API_KEY`,
		Example: `  voxnote start --metrics-addr 127.0.0.1:9331
  voxnote record start
  voxnote record stop
  voxnote transcribe meeting.wav --hint Arabic
  voxnote lang set ar
  voxnote copy
  voxnote export --dir ~/notes
  voxnote service install --env GEMINI_API_KEY=...
  voxnote health`,
		DisableFlagsInUseLine: true,
	}

	root.Version = version
	root.SetVersionTemplate("Voxnote v{{.Version}}\n")

	cfgPath := root.PersistentFlags().StringP("config", "c", "", "Path to config file (TOML). Defaults to ~/.config/voxnote/config.toml")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(daemon.NewStartCmd(cfgPath))
	root.AddCommand(daemon.NewStopCmd(cfgPath))
	root.AddCommand(daemon.NewRestartCmd(cfgPath))
	root.AddCommand(control.NewStatusCmd(cfgPath))
	root.AddCommand(control.NewRecordCmd(cfgPath))
	root.AddCommand(control.NewTranscribeCmd(cfgPath))
	root.AddCommand(control.NewURLCmd(cfgPath))
	root.AddCommand(control.NewTextCmd(cfgPath))
	root.AddCommand(control.NewCopyCmd(cfgPath))
	root.AddCommand(control.NewExportCmd(cfgPath))
	root.AddCommand(control.NewLangCmd(cfgPath))
	root.AddCommand(control.NewMicCmd(cfgPath))
	root.AddCommand(control.NewDoctorCmd(cfgPath))
	root.AddCommand(control.NewServiceRootCmd(cfgPath))
	root.AddCommand(control.NewHealthCmd(cfgPath))
	root.AddCommand(control.NewTailLogCmd(cfgPath))

	// Hidden internal serve command used by start.
	root.AddCommand(daemon.NewServeCmd(cfgPath))

	applyColorHelp(root)

	if err := root.Execute(); err != nil {
		return err
	}
	return nil
}

func applyColorHelp(root *cobra.Command) {
	const (
		boldBlue = "\033[1;34m"
		green    = "\033[32m"
		bold     = "\033[1m"
		dim      = "\033[2m"
		reset    = "\033[0m"
	)
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		write := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }
		writeln := func(line string) { _, _ = fmt.Fprintln(out, line) }

		write("%sVoxnote%s — voice note transcription daemon %s(v%s)%s\n", boldBlue, reset, dim, version, reset)
		write("%sRecords or ingests audio, transcribes remotely, keeps an editable transcript.%s\n\n", dim, reset)

		write("%sUsage%s\n", bold, reset)
		write("  voxnote [command] [flags]\n\n")

		write("%sKey commands%s\n", bold, reset)
		writeln("  start|stop|restart          daemon lifecycle")
		writeln("  record start|stop           record a clip, transcribe on stop")
		writeln("  transcribe <file>           transcribe an audio file")
		writeln("  url <audio-url>             submit an audio URL (placeholder)")
		writeln("  text \"...\"                  replace the transcript")
		writeln("  copy                        copy transcript to clipboard")
		writeln("  export [--dir]              save transcript as transcription.txt")
		writeln("  lang get|set                UI language (en, ar)")
		writeln("  mic list|set                select input device")
		writeln("  doctor                      check deps/API key/clipboard/portaudio")
		writeln("  service install|uninstall|status manage launchd plist (macOS)")
		writeln("  status [--json]             daemon state + transcript")
		writeln("  health                      control-socket liveness ping")
		writeln("  tail-log                    show last log lines")
		writeln("")

		write("%sNotable flags & env%s\n", bold, reset)
		writeln("  --metrics-addr <addr>   enable /metrics (Prometheus)")
		writeln("  -c, --config <path>     config file (default ~/.config/voxnote/config.toml)")
		writeln("  Env: VOXNOTE_LANG=ar, VOXNOTE_PROVIDER=openai,")
		writeln("       VOXNOTE_METRICS_ADDR=host:port, VOXNOTE_LOG_LEVEL=debug,")
		writeln("       GEMINI_API_KEY / OPENAI_API_KEY")
		writeln("")

		write("%sExamples%s\n", bold, reset)
		writeln("  voxnote start --metrics-addr 127.0.0.1:9331")
		writeln("  voxnote record start")
		writeln("  voxnote record stop")
		writeln("  voxnote transcribe meeting.wav --hint Arabic")
		writeln("  voxnote lang set ar")
		writeln("  voxnote copy")
		writeln("  voxnote export --dir ~/notes")
		writeln("  voxnote health")
		writeln("")

		write("%sCommands%s\n", bold, reset)
		for _, c := range cmd.Commands() {
			if c.Hidden {
				continue
			}
			write("  %s%-15s%s %s\n", green, c.Name(), reset, c.Short)
		}
	})
}
