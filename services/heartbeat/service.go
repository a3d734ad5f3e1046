// Package heartbeat prints a timestamped line to the console at a fixed
// interval so a serial monitor can see the firmware is alive.
package heartbeat

import (
	"context"
	"io"
	"time"

	"gd32h7-usart/errcode"
	"gd32h7-usart/x/fmtx"
)

const DefaultInterval = time.Second

type Service struct {
	Out      io.Writer
	Interval time.Duration

	reset chan time.Duration
	done  chan struct{}
}

func (s *Service) serviceLoop(ctx context.Context) {
	defer close(s.done)
	tick := time.NewTicker(s.Interval)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and interval changes
	for {
		select {
		case <-ctx.Done():
			fmtx.Fprintf(s.Out, "Info: heartbeat service stopping\r\n")
			return
		case t := <-tick.C:
			fmtx.Fprintf(s.Out, "Info: %s Heartbeat\r\n", t.Format("15:04:05"))
		case d := <-s.reset:
			tick.Reset(d)
			fmtx.Fprintf(s.Out, "Info: Heartbeat interval set to %s\r\n", d.String())
		}
	}
}

// SetInterval changes the period of a running service. It returns
// errcode.Unconfigured before Start and after the service has stopped.
func (s *Service) SetInterval(d time.Duration) error {
	if d <= 0 {
		return errcode.InvalidParams
	}
	if s.reset == nil {
		return errcode.Unconfigured
	}
	select {
	case s.reset <- d:
		return nil
	case <-s.done:
		return errcode.Unconfigured
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context) error {
	if s.Out == nil {
		return errcode.Wrap(errcode.Unconfigured, "heartbeat", "no output", nil)
	}
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	s.reset = make(chan time.Duration)
	s.done = make(chan struct{})
	go s.serviceLoop(ctx)
	return nil
}
