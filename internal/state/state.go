// Package state owns the mutable application state. All mutation goes
// through the setters; nothing else writes these fields.
package state

import (
	"sync"

	"voxnote/internal/i18n"
)

// Snapshot is a consistent copy of the state at one instant.
type Snapshot struct {
	Lang       i18n.Language
	Recording  bool
	Loading    bool
	Transcript string
}

type State struct {
	mu         sync.Mutex
	lang       i18n.Language
	recording  bool
	loading    bool
	transcript string
}

func New(lang i18n.Language) *State {
	return &State{lang: lang}
}

func (s *State) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

func (s *State) SetLanguage(lang i18n.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
}

func (s *State) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

func (s *State) SetRecording(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = on
}

// BeginRequest claims the single transcription slot. It returns false if a
// request is already outstanding; on true the caller must EndRequest on every
// exit path.
func (s *State) BeginRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *State) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Transcript returns the current text. It is replaced wholesale by each
// transcription result and by explicit user edits.
func (s *State) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

func (s *State) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Lang:       s.lang,
		Recording:  s.recording,
		Loading:    s.loading,
		Transcript: s.transcript,
	}
}

// StatusKey is the i18n key for the current activity, re-derived from state
// so a language switch mid-operation stays consistent.
func (snap Snapshot) StatusKey() string {
	switch {
	case snap.Loading:
		return "status_processing"
	case snap.Recording:
		return "status_recording"
	default:
		return "status_ready"
	}
}

// RecordLabelKey is the i18n key for the record toggle label.
func (snap Snapshot) RecordLabelKey() string {
	if snap.Recording {
		return "record_stop"
	}
	return "record_start"
}
