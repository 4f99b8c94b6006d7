// Package doctor runs environment diagnostics for voxnote.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"voxnote/internal/config"
)

// Result represents a diagnostic check.
type Result struct {
	Name   string
	Pass   bool
	Detail string
}

// Run executes doctor checks.
func Run(cfg *config.Config) []Result {
	results := []Result{
		checkFile("config path", cfg.Paths.ConfigPath),
		checkProvider(cfg),
		checkAPIKey(cfg),
		checkClipboard(),
		checkPortAudioPkgConfig(),
	}
	results = append(results, checkPortAudio())
	if cfg.Hook.Command != "" {
		results = append(results, checkHookExecutable(cfg.Hook.Command))
	}
	return results
}

func checkFile(label, path string) Result {
	if path == "" {
		return Result{Name: label, Pass: false, Detail: "not set"}
	}
	if _, err := os.Stat(os.ExpandEnv(path)); err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: path}
}

func checkProvider(cfg *config.Config) Result {
	switch cfg.ASR.Provider {
	case "gemini", "openai":
		return Result{Name: "asr.provider", Pass: true, Detail: cfg.ASR.Provider}
	default:
		return Result{Name: "asr.provider", Pass: false, Detail: fmt.Sprintf("unknown provider %q (want gemini or openai)", cfg.ASR.Provider)}
	}
}

func checkAPIKey(cfg *config.Config) Result {
	if cfg.APIKey() != "" {
		return Result{Name: "api key", Pass: true, Detail: "set"}
	}
	return Result{Name: "api key", Pass: false, Detail: "not set (asr.api_key, GEMINI_API_KEY or OPENAI_API_KEY)"}
}

// checkClipboard verifies the helper binary atotto/clipboard shells out to.
func checkClipboard() Result {
	label := "clipboard"
	if runtime.GOOS == "darwin" {
		if path, err := exec.LookPath("pbcopy"); err == nil {
			return Result{Name: label, Pass: true, Detail: path}
		}
		return Result{Name: label, Pass: false, Detail: "pbcopy not found"}
	}
	for _, helper := range []string{"xclip", "xsel", "wl-copy"} {
		if path, err := exec.LookPath(helper); err == nil {
			return Result{Name: label, Pass: true, Detail: path}
		}
	}
	return Result{Name: label, Pass: false, Detail: "no xclip/xsel/wl-copy on PATH; copy will fail"}
}

func checkHookExecutable(cmd string) Result {
	label := "hook.command"
	path := os.ExpandEnv(cmd)
	// If contains a path separator, treat as explicit path.
	if strings.Contains(path, "/") || strings.Contains(path, "\\") {
		info, err := os.Stat(path)
		if err != nil {
			return Result{Name: label, Pass: false, Detail: err.Error()}
		}
		if info.IsDir() {
			return Result{Name: label, Pass: false, Detail: "is a directory; set hook.command to an executable file"}
		}
		if info.Mode().Perm()&0o111 == 0 {
			return Result{Name: label, Pass: false, Detail: "not executable; chmod +x or choose another command"}
		}
		return Result{Name: label, Pass: true, Detail: path}
	}
	// Else search PATH.
	resolved, err := exec.LookPath(path)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: resolved}
}

func checkPortAudioPkgConfig() Result {
	pkg, err := exec.LookPath("pkg-config")
	if err != nil {
		return Result{Name: "pkg-config", Pass: false, Detail: "pkg-config not found (brew install pkg-config)"}
	}
	cmd := exec.Command(pkg, "--exists", "portaudio-2.0")
	if err := cmd.Run(); err != nil {
		return Result{Name: "portaudio lib", Pass: false, Detail: "portaudio-2.0 not found (brew install portaudio)"}
	}
	versionCmd := exec.Command(pkg, "--modversion", "portaudio-2.0")
	if out, err := versionCmd.Output(); err == nil {
		return Result{Name: "portaudio lib", Pass: true, Detail: strings.TrimSpace(string(out))}
	}
	return Result{Name: "portaudio lib", Pass: true, Detail: "found via pkg-config"}
}
