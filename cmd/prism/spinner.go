package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"prism/internal/ui"
	"prism/internal/workflow"
)

const defaultSpinnerInterval = 120 * time.Millisecond

// progressSpinner draws a one-line spinner on a terminal while the catalog
// loads or an assignment runs. It only appears once delay has passed.
type progressSpinner struct {
	writer        io.Writer
	delay         time.Duration
	frameInterval time.Duration
	frames        []rune

	events chan string
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once

	mu       sync.Mutex
	frameIdx int
}

func newProgressSpinner(w io.Writer, delay time.Duration) *progressSpinner {
	return newCustomProgressSpinner(w, delay, defaultSpinnerInterval)
}

func newCustomProgressSpinner(w io.Writer, delay, frameInterval time.Duration) *progressSpinner {
	if w == nil {
		w = io.Discard
	}
	sp := &progressSpinner{
		writer:        w,
		delay:         delay,
		frameInterval: frameInterval,
		frames:        []rune{'|', '/', '-', '\\'},
		events:        make(chan string, 8),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	go sp.loop()
	return sp
}

// Stage implements ui.StartupReporter.
func (s *progressSpinner) Stage(stage ui.StartupStage, detail string) {
	s.Status(formatStageMessage(stage, detail))
}

// Transition reports a workflow state change.
func (s *progressSpinner) Transition(state workflow.State) {
	if msg, ok := transitionMessages[state]; ok {
		s.Status(msg)
	}
}

// Status replaces the spinner message. Messages are dropped when the spinner
// falls behind.
func (s *progressSpinner) Status(msg string) {
	if s == nil {
		return
	}
	select {
	case <-s.stopCh:
		return
	default:
	}
	select {
	case s.events <- msg:
	default:
	}
}

func (s *progressSpinner) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		close(s.stopCh)
		<-s.doneCh
	})
}

func (s *progressSpinner) loop() {
	defer close(s.doneCh)

	var delayCh <-chan time.Time
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		delayCh = timer.C
	}

	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	current := ""
	hasMessage := false
	visible := s.delay == 0

	for {
		select {
		case <-s.stopCh:
			if visible {
				s.clearLine()
			}
			return
		case msg := <-s.events:
			current = msg
			hasMessage = true
			if visible {
				s.render(current)
			}
		case <-ticker.C:
			if visible && hasMessage {
				s.render(current)
			}
		case <-delayCh:
			delayCh = nil
			visible = true
			if hasMessage {
				s.render(current)
			}
		}
	}
}

func (s *progressSpinner) render(msg string) {
	frame := s.nextFrame()
	_, _ = fmt.Fprintf(s.writer, "\r\033[2K%c %s", frame, msg)
}

func (s *progressSpinner) clearLine() {
	_, _ = fmt.Fprint(s.writer, "\r\033[2K")
}

func (s *progressSpinner) nextFrame() rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := s.frames[s.frameIdx%len(s.frames)]
	s.frameIdx++
	return frame
}

var stageMessages = map[ui.StartupStage]string{
	ui.StartupStageDetectingCapability: "Checking the system accent scheme...",
	ui.StartupStageScanning:            "Looking for applications...",
	ui.StartupStageReadingAccents:      "Reading accent overrides...",
	ui.StartupStageReady:               "Mixing the palette...",
}

var transitionMessages = map[workflow.State]string{
	workflow.Writing:     "Writing preference...",
	workflow.Terminating: "Waiting for the application to quit...",
	workflow.Relaunching: "Relaunching...",
}

func formatStageMessage(stage ui.StartupStage, detail string) string {
	msg := stageMessages[stage]
	if strings.TrimSpace(msg) == "" {
		msg = "Starting prism..."
	}
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return msg
	}
	return fmt.Sprintf("%s - %s", msg, detail)
}
