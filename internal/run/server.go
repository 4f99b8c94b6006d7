package run

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"voxnote/internal/capture"
	"voxnote/internal/config"
	"voxnote/internal/control"
	"voxnote/internal/hook"
	"voxnote/internal/i18n"
	"voxnote/internal/state"
	"voxnote/internal/transcribe"

	"github.com/sirupsen/logrus"
)

// urlStubDelay is the fixed artificial delay before the URL placeholder
// notice.
const urlStubDelay = 1500 * time.Millisecond

// Server owns the application state and serves the control socket.
type Server struct {
	cfg       *config.Config
	logger    *logrus.Logger
	backend   transcribe.Backend
	recorder  capture.Recorder
	state     *state.State
	hook      *hook.Runner
	startedAt time.Time

	metrics metrics
	hookCh  chan hook.Job

	wg sync.WaitGroup

	// sleep is stubbed in tests to skip the artificial URL delay.
	sleep func(time.Duration)
}

// NewServer wires a server from its parts. Serve builds the real parts.
func NewServer(cfg *config.Config, logger *logrus.Logger, backend transcribe.Backend, recorder capture.Recorder) *Server {
	lang, err := i18n.ParseLanguage(cfg.UI.Lang)
	if err != nil {
		logger.Warnf("config lang: %v; falling back to %s", err, lang.Tag())
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		backend:   backend,
		recorder:  recorder,
		state:     state.New(lang),
		hook:      hook.NewRunner(cfg, logger),
		startedAt: time.Now(),
		hookCh:    make(chan hook.Job, 16),
		sleep:     time.Sleep,
	}
}

// Serve runs the daemon until interrupted.
func Serve(cfg *config.Config, logger *logrus.Logger) error {
	if err := config.MustStatePaths(cfg); err != nil {
		return err
	}
	backend, err := transcribe.New(cfg, logger)
	if err != nil {
		return err
	}
	recorder, err := capture.NewRecorder(cfg, logger)
	if err != nil {
		return err
	}

	// Write pid file.
	if err := os.WriteFile(cfg.Paths.PidPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(cfg.Paths.PidPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("remove pid file: %v", err)
		}
	}()
	// Ensure socket removed
	if err := os.Remove(cfg.Paths.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Debugf("remove stale socket: %v", err)
	}

	srv := NewServer(cfg, logger, backend, recorder)
	srv.metrics.reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Control socket
	go srv.controlLoop(ctx)

	// Hook worker
	srv.wg.Add(1)
	go srv.hookWorker(ctx)

	// Metrics server
	if cfg.Metrics.Enabled {
		go srv.metricsServe(ctx.Done(), cfg.Metrics.Addr, logger)
	}

	// Handle signals
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	select {
	case s := <-sigCh:
		logger.Infof("received signal %s, shutting down", s)
		cancel()
	case <-ctx.Done():
	}
	// Release the mic if a session is still open.
	if srv.recorder.Active() {
		if _, err := srv.recorder.Stop(); err != nil && !errors.Is(err, capture.ErrNoAudio) {
			logger.Warnf("stop recorder: %v", err)
		}
	}
	srv.wg.Wait()
	return nil
}

func (s *Server) controlLoop(ctx context.Context) {
	ln, err := net.Listen("unix", s.cfg.Paths.SocketPath)
	if err != nil {
		s.logger.Errorf("control listen: %v", err)
		return
	}
	defer func() {
		if err := ln.Close(); err != nil && ctx.Err() == nil {
			s.logger.Warnf("control listener close: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Errorf("control accept: %v", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil && ctx.Err() == nil {
			s.logger.Warnf("control connection close: %v", err)
		}
	}()
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		return
	}
	var req control.Request
	if err := json.Unmarshal(sc.Bytes(), &req); err != nil {
		return
	}
	switch req.Op {
	case "status":
		_ = json.NewEncoder(conn).Encode(s.statusNow())
	case "health":
		_ = json.NewEncoder(conn).Encode(control.Result{OK: true, Message: "ok"})
	case "lang":
		_ = json.NewEncoder(conn).Encode(s.setLanguage(req.Arg))
	case "record-start":
		_ = json.NewEncoder(conn).Encode(s.recordStart(ctx))
	case "record-stop":
		_ = json.NewEncoder(conn).Encode(s.recordStop(ctx, req.Hint))
	case "transcribe":
		_ = json.NewEncoder(conn).Encode(s.transcribeFile(ctx, req.Arg, req.Hint))
	case "url":
		_ = json.NewEncoder(conn).Encode(s.submitURL(req.Arg))
	case "text":
		_ = json.NewEncoder(conn).Encode(s.setTranscript(req.Arg))
	default:
		// ignore unknown
	}
}

// statusNow re-derives every localized label from the current state, so a
// language switch mid-operation is reflected immediately.
func (s *Server) statusNow() control.Status {
	snap := s.state.Snapshot()
	return control.Status{
		Running:     true,
		UptimeSec:   time.Since(s.startedAt).Seconds(),
		Lang:        snap.Lang.Tag(),
		Direction:   snap.Lang.Direction(),
		Recording:   snap.Recording,
		Loading:     snap.Loading,
		StatusText:  snap.Lang.T(snap.StatusKey()),
		RecordLabel: snap.Lang.T(snap.RecordLabelKey()),
		Transcript:  snap.Transcript,
	}
}

// setLanguage updates the live state and the persisted preference.
func (s *Server) setLanguage(tag string) control.Result {
	lang, err := i18n.ParseLanguage(strings.ToLower(strings.TrimSpace(tag)))
	if err != nil {
		return control.Result{OK: false, Message: err.Error()}
	}
	s.state.SetLanguage(lang)
	s.cfg.UI.Lang = lang.Tag()
	if s.cfg.Paths.ConfigPath != "" {
		if err := config.Save(s.cfg, s.cfg.Paths.ConfigPath); err != nil {
			s.logger.Warnf("persist language: %v", err)
		}
	}
	snap := s.state.Snapshot()
	return control.Result{OK: true, Message: lang.T(snap.StatusKey())}
}

func (s *Server) setTranscript(text string) control.Result {
	s.state.SetTranscript(text)
	return control.Result{OK: true, Text: text}
}

func (s *Server) recordStart(ctx context.Context) control.Result {
	lang := s.state.Language()
	if s.state.Loading() {
		return control.Result{OK: false, Message: lang.T("busy")}
	}
	if s.recorder.Active() {
		return control.Result{OK: false, Message: lang.T("already_recording")}
	}
	if err := s.recorder.Start(ctx); err != nil {
		s.logger.Errorf("record start: %v", err)
		return control.Result{OK: false, Message: lang.T("error_mic")}
	}
	s.state.SetRecording(true)
	return control.Result{OK: true, Message: lang.T("status_recording")}
}

func (s *Server) recordStop(ctx context.Context, hint string) control.Result {
	lang := s.state.Language()
	if !s.recorder.Active() {
		return control.Result{OK: false, Message: lang.T("not_recording")}
	}
	clip, err := s.recorder.Stop()
	s.state.SetRecording(false)
	if err != nil {
		s.logger.Errorf("record stop: %v", err)
		return control.Result{OK: false, Message: lang.T("error_transcription")}
	}
	return s.runTranscription(ctx, clip.Path, hint)
}

func (s *Server) transcribeFile(ctx context.Context, path, hint string) control.Result {
	lang := s.state.Language()
	if strings.TrimSpace(path) == "" {
		return control.Result{OK: false, Message: lang.T("error_transcription")}
	}
	return s.runTranscription(ctx, path, hint)
}

// runTranscription holds the loading flag for the full duration of exactly
// one backend call and always releases it.
func (s *Server) runTranscription(ctx context.Context, audioPath, hint string) control.Result {
	lang := s.state.Language()
	if !s.state.BeginRequest() {
		return control.Result{OK: false, Message: lang.T("busy")}
	}
	defer s.state.EndRequest()

	if strings.TrimSpace(hint) == "" {
		hint = lang.Hint()
	}
	s.metrics.incRequests()
	s.logger.Infof("transcribing %s (hint %q)", audioPath, hint)

	text, err := s.backend.Transcribe(ctx, audioPath, hint)
	if err != nil {
		s.metrics.incErrors()
		s.logger.Errorf("transcribe %s: %v", audioPath, err)
		msg := s.state.Language().T("error_transcription")
		s.state.SetTranscript(msg)
		return control.Result{OK: false, Text: msg, Message: msg}
	}

	s.state.SetTranscript(text)
	s.metrics.incTranscripts()
	s.fireHook(text)
	return control.Result{OK: true, Text: text}
}

// submitURL is a placeholder: validate, wait the fixed delay, decline.
func (s *Server) submitURL(raw string) control.Result {
	lang := s.state.Language()
	if strings.TrimSpace(raw) == "" {
		s.metrics.incURLRejected()
		return control.Result{OK: false, Message: lang.T("error_url_empty")}
	}
	if !s.state.BeginRequest() {
		return control.Result{OK: false, Message: lang.T("busy")}
	}
	defer s.state.EndRequest()
	s.sleep(urlStubDelay)
	return control.Result{OK: false, Message: lang.T("url_not_supported")}
}

func (s *Server) fireHook(text string) {
	if !s.hook.Enabled() {
		return
	}
	job := hook.Job{Text: text, Timestamp: time.Now()}
	select {
	case s.hookCh <- job:
	default:
		s.logger.Warn("hook queue full, dropping job")
	}
}
