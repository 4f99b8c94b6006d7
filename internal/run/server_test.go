package run

import (
	"context"
	"errors"
	"testing"
	"time"

	"voxnote/internal/capture"
	"voxnote/internal/config"
	"voxnote/internal/i18n"
	"voxnote/internal/logging"
)

type fakeBackend struct {
	text  string
	err   error
	calls int
	paths []string
	hints []string
}

func (f *fakeBackend) Transcribe(_ context.Context, audioPath, hint string) (string, error) {
	f.calls++
	f.paths = append(f.paths, audioPath)
	f.hints = append(f.hints, hint)
	return f.text, f.err
}

type fakeRecorder struct {
	active   bool
	startErr error
	clip     capture.Clip
	stopErr  error
	stops    int
}

func (f *fakeRecorder) Start(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.active = true
	return nil
}

func (f *fakeRecorder) Stop() (capture.Clip, error) {
	f.stops++
	f.active = false
	return f.clip, f.stopErr
}

func (f *fakeRecorder) Active() bool { return f.active }

func newTestServer(t *testing.T, backend *fakeBackend, rec *fakeRecorder) *Server {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	cfg.Paths.ConfigPath = t.TempDir() + "/config.toml"
	srv := NewServer(cfg, logging.NewTestLogger(), backend, rec)
	srv.sleep = func(time.Duration) {}
	return srv
}

func TestRecordStopTranscribesOnce(t *testing.T) {
	backend := &fakeBackend{text: "hello world"}
	rec := &fakeRecorder{clip: capture.Clip{Path: "/tmp/clip.wav", MIME: "audio/wav"}}
	srv := newTestServer(t, backend, rec)

	if res := srv.recordStart(context.Background()); !res.OK {
		t.Fatalf("record start: %+v", res)
	}
	if !srv.state.Recording() {
		t.Fatalf("state should be recording")
	}

	res := srv.recordStop(context.Background(), "")
	if !res.OK || res.Text != "hello world" {
		t.Fatalf("record stop: %+v", res)
	}
	if rec.stops != 1 || backend.calls != 1 {
		t.Fatalf("stops=%d calls=%d, want 1/1", rec.stops, backend.calls)
	}
	if backend.paths[0] != "/tmp/clip.wav" {
		t.Fatalf("backend got path %q", backend.paths[0])
	}
	if backend.hints[0] != "English" {
		t.Fatalf("backend got hint %q, want English", backend.hints[0])
	}
	if srv.state.Transcript() != "hello world" {
		t.Fatalf("transcript %q", srv.state.Transcript())
	}
	if srv.state.Loading() {
		t.Fatalf("loading must be false after success")
	}
	if srv.state.Recording() {
		t.Fatalf("recording must be false after stop")
	}
}

func TestRecordStartMicFailure(t *testing.T) {
	rec := &fakeRecorder{startErr: errors.New("device busy")}
	srv := newTestServer(t, &fakeBackend{}, rec)

	res := srv.recordStart(context.Background())
	if res.OK {
		t.Fatalf("expected failure")
	}
	if res.Message != i18n.English.T("error_mic") {
		t.Fatalf("message %q", res.Message)
	}
	if srv.state.Recording() {
		t.Fatalf("no session must be created on refusal")
	}
}

func TestRecordStopWithoutSession(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, &fakeRecorder{})
	res := srv.recordStop(context.Background(), "")
	if res.OK || res.Message != i18n.English.T("not_recording") {
		t.Fatalf("result %+v", res)
	}
}

func TestTranscriptionFailureShowsLocalizedError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("503 from service")}
	srv := newTestServer(t, backend, &fakeRecorder{})
	srv.state.SetLanguage(i18n.Arabic)

	res := srv.transcribeFile(context.Background(), "/tmp/x.wav", "")
	if res.OK {
		t.Fatalf("expected failure")
	}
	want := i18n.Arabic.T("error_transcription")
	if res.Message != want {
		t.Fatalf("message %q, want %q", res.Message, want)
	}
	if srv.state.Transcript() != want {
		t.Fatalf("transcript %q, want localized error", srv.state.Transcript())
	}
	if srv.state.Loading() {
		t.Fatalf("loading must be false after failure")
	}
	if backend.hints[0] != "Arabic" {
		t.Fatalf("hint %q, want Arabic", backend.hints[0])
	}
}

func TestExplicitHintForwardedVerbatim(t *testing.T) {
	backend := &fakeBackend{text: "ok"}
	srv := newTestServer(t, backend, &fakeRecorder{})

	if res := srv.transcribeFile(context.Background(), "/tmp/x.wav", "Egyptian Arabic"); !res.OK {
		t.Fatalf("transcribe: %+v", res)
	}
	if backend.hints[0] != "Egyptian Arabic" {
		t.Fatalf("hint %q", backend.hints[0])
	}
}

func TestSingleFlightRejectsSecondRequest(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{text: "x"}, &fakeRecorder{})
	if !srv.state.BeginRequest() {
		t.Fatalf("begin")
	}
	res := srv.transcribeFile(context.Background(), "/tmp/x.wav", "")
	if res.OK || res.Message != i18n.English.T("busy") {
		t.Fatalf("expected busy, got %+v", res)
	}
	if res2 := srv.recordStart(context.Background()); res2.OK {
		t.Fatalf("record must be rejected while loading")
	}
	srv.state.EndRequest()
}

func TestURLEmptyValidation(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, &fakeRecorder{})
	slept := false
	srv.sleep = func(time.Duration) { slept = true }
	srv.state.SetTranscript("keep me")

	res := srv.submitURL("   ")
	if res.OK || res.Message != i18n.English.T("error_url_empty") {
		t.Fatalf("result %+v", res)
	}
	if slept {
		t.Fatalf("no delay for validation failure")
	}
	if srv.state.Loading() {
		t.Fatalf("loading must never be set for empty URL")
	}
	if srv.state.Transcript() != "keep me" {
		t.Fatalf("transcript must be unchanged")
	}
}

func TestURLPlaceholderNotice(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, &fakeRecorder{})
	slept := false
	srv.sleep = func(d time.Duration) {
		slept = true
		if d != urlStubDelay {
			t.Fatalf("delay %v", d)
		}
	}

	res := srv.submitURL("https://example.com/a.mp3")
	if res.OK || res.Message != i18n.English.T("url_not_supported") {
		t.Fatalf("result %+v", res)
	}
	if !slept {
		t.Fatalf("fixed delay expected")
	}
	if srv.state.Loading() {
		t.Fatalf("loading must be reset after notice")
	}
}

func TestSetLanguageRelocalizesStatus(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, &fakeRecorder{})

	st := srv.statusNow()
	if st.Lang != "en" || st.Direction != "ltr" || st.StatusText != "Ready" {
		t.Fatalf("initial status %+v", st)
	}

	if res := srv.setLanguage("ar"); !res.OK {
		t.Fatalf("set lang: %+v", res)
	}
	st = srv.statusNow()
	if st.Lang != "ar" || st.Direction != "rtl" {
		t.Fatalf("status after switch %+v", st)
	}
	if st.StatusText != i18n.Arabic.T("status_ready") {
		t.Fatalf("status text %q", st.StatusText)
	}
	if st.RecordLabel != i18n.Arabic.T("record_start") {
		t.Fatalf("record label %q", st.RecordLabel)
	}

	// Preference persisted for the next startup.
	loaded, err := config.Load(srv.cfg.Paths.ConfigPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.UI.Lang != "ar" {
		t.Fatalf("persisted lang %q", loaded.UI.Lang)
	}

	if res := srv.setLanguage("fr"); res.OK {
		t.Fatalf("unsupported tag must be rejected")
	}
}

func TestSetTranscriptEdits(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, &fakeRecorder{})
	res := srv.setTranscript("edited by hand")
	if !res.OK || srv.state.Transcript() != "edited by hand" {
		t.Fatalf("edit failed: %+v", res)
	}
}
