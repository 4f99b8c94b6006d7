package main

import (
	"fmt"

	"voxnote/internal/config"
)

// Debug helper: print the resolved config.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	fmt.Printf("config=%s lang=%s provider=%s model=%s\n", cfg.Paths.ConfigPath, cfg.UI.Lang, cfg.ASR.Provider, cfg.ASR.Model)
	fmt.Printf("audio device=%q rate=%d frame_ms=%d trim_silence=%v\n", cfg.Audio.DeviceName, cfg.Audio.SampleRate, cfg.Audio.FrameMS, cfg.VAD.TrimSilence)
	fmt.Printf("hook.command=%q args=%v\n", cfg.Hook.Command, cfg.Hook.Args)
}
