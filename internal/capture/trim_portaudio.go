//go:build portaudio

package capture

import (
	vad "github.com/maxhawkins/go-webrtcvad"
)

// trimFunc returns a TrimFunc that drops leading and trailing silence so the
// uploaded payload stays small. On any VAD setup problem the samples pass
// through untouched.
func (r *micRecorder) trimFunc() TrimFunc {
	rate := r.cfg.Audio.SampleRate
	frameSamples := rate * r.cfg.Audio.FrameMS / 1000
	aggressiveness := r.cfg.VAD.Aggressiveness

	return func(samples []int16) []int16 {
		if !vad.ValidRateAndFrameLength(rate, frameSamples) {
			return samples
		}
		v := vad.New()
		if err := v.SetMode(aggressiveness); err != nil {
			r.logger.Warnf("vad mode: %v", err)
			return samples
		}
		first, last := -1, -1
		for i := 0; i+frameSamples <= len(samples); i += frameSamples {
			if v.Process(rate, samples[i:i+frameSamples]) {
				if first == -1 {
					first = i
				}
				last = i + frameSamples
			}
		}
		if first == -1 {
			// All silence; let the service make the call.
			return samples
		}
		trimmed := samples[first:last]
		if len(trimmed) != len(samples) {
			r.logger.Debugf("trimmed silence: %d -> %d samples", len(samples), len(trimmed))
		}
		return trimmed
	}
}
