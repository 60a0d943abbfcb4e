package hyundaiht

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"time"

	goserial "github.com/daedaluz/goserial"

	"github.com/nerrad567/wallpad-bridge/internal/infrastructure/logging"
)

// openBackoff is how long the Port driver waits before retrying a failed
// serial open.
const openBackoff = 5 * time.Second

// readChunkSize is the size of the scratch buffer used for each read.
const readChunkSize = 256

// pendingSend is the single outstanding outbound frame a Port may have at
// any instant, per the bus's half-duplex discipline.
type pendingSend struct {
	frame       Frame
	bytes       []byte
	retryNeeded bool
	attempts    int
}

// openFunc opens a serial transport; swapped out in tests.
type openFunc func(path string, baud goserial.CFlag, readTimeout time.Duration) (SerialPort, error)

// Port owns one serial port and runs the single event loop that
// multiplexes reads with at most one outstanding write, per §4.4.
type Port struct {
	Name        string // "primary" or "secondary", for logging
	Path        string
	ReadTimeout time.Duration

	sendQueue chan Frame
	dispatch  func(Frame)
	logger    *logging.Logger
	open      openFunc

	reassembler *Reassembler
	pending     *pendingSend
}

// NewPort builds a Port driver. dispatch is invoked for every successfully
// decoded frame; it must not block.
func NewPort(name, path string, readTimeout time.Duration, dispatch func(Frame), logger *logging.Logger) *Port {
	return &Port{
		Name:        name,
		Path:        path,
		ReadTimeout: readTimeout,
		sendQueue:   make(chan Frame, 256),
		dispatch:    dispatch,
		logger:      logger,
		open:        openSerialPort,
		reassembler: NewReassembler(),
	}
}

// Enqueue adds a frame to this port's send queue. Safe for concurrent use;
// the only consumer is the port's own run loop.
func (p *Port) Enqueue(f Frame) {
	p.sendQueue <- f
}

// Run opens the port and runs its event loop until ctx is cancelled. On
// open failure it retries after openBackoff. On a broken pipe it restarts
// from open. It returns ctx.Err() once ctx is cancelled and does not
// return otherwise.
func (p *Port) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sp, err := p.open(p.Path, goserial.B9600, p.ReadTimeout)
		if err != nil {
			p.logger.Error("serial open failed", "port", p.Name, "path", p.Path, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(openBackoff):
				continue
			}
		}

		p.drainStaleQueue()
		p.reassembler.Reset()
		p.pending = nil

		err = p.readLoop(ctx, sp)
		sp.Close()

		if errors.Is(err, errBrokenPipe) {
			p.logger.Warn("broken pipe, reopening port", "port", p.Name)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Any other exit from readLoop is itself an I/O condition already
		// logged there; reopen rather than give up.
	}
}

var errBrokenPipe = errors.New("hyundaiht: broken pipe")

// drainStaleQueue discards anything queued while the port was down; those
// frames were built against bus state that may no longer hold.
func (p *Port) drainStaleQueue() {
	for {
		select {
		case f := <-p.sendQueue:
			p.logger.Warn("dropping stale queued frame from before reopen", "port", p.Name, "device", f.DeviceID)
		default:
			return
		}
	}
}

// readLoop is the main multiplexing loop: each iteration either reads a
// chunk of bytes or times out, per §4.4.
func (p *Port) readLoop(ctx context.Context, sp SerialPort) error {
	buf := make([]byte, readChunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := sp.Read(buf)
		if err != nil {
			if isBrokenPipe(err) {
				return errBrokenPipe
			}
			if isTimeout(err) {
				p.onTimeout(sp)
				continue
			}
			p.logger.Error("serial read error", "port", p.Name, "error", err)
			continue
		}
		if n == 0 {
			p.onTimeout(sp)
			continue
		}

		p.onRead(buf[:n])
	}
}

// onTimeout implements the timeout branch of the main loop: rewrite the
// pending frame if a retry is flagged, else pull the next queued frame.
func (p *Port) onTimeout(sp SerialPort) {
	if p.pending != nil && p.pending.retryNeeded {
		if _, err := sp.Write(p.pending.bytes); err != nil {
			p.logger.Error("retry write failed", "port", p.Name, "error", err)
			return
		}
		p.pending.attempts++
		p.logger.Warn("retried unacknowledged frame", "port", p.Name, "device", p.pending.frame.DeviceID,
			"sub", p.pending.frame.SubID, "room", p.pending.frame.RoomID, "attempt", p.pending.attempts)
		p.pending.retryNeeded = false
		return
	}

	select {
	case f := <-p.sendQueue:
		encoded := f.Encode()
		if _, err := sp.Write(encoded); err != nil {
			p.logger.Error("write failed", "port", p.Name, "error", err)
			return
		}
		p.pending = &pendingSend{frame: f, bytes: encoded}
	default:
	}
}

// onRead feeds bytes to the reassembler and dispatches any resulting
// frames, updating the pending-send slot per the correlation rule.
func (p *Port) onRead(chunk []byte) {
	frames, noise := p.reassembler.Feed(chunk)
	if noise && p.pending != nil {
		p.pending.retryNeeded = true
	}

	for _, raw := range frames {
		decoded, err := Decode(raw)
		if err != nil {
			p.logger.Warn("frame decode failed", "port", p.Name, "error", err)
			if p.pending != nil {
				p.pending.retryNeeded = true
			}
			continue
		}

		p.dispatch(decoded)

		if p.pending == nil {
			continue
		}
		if IsCorrectResponse(p.pending.frame, decoded) {
			p.pending = nil
		} else {
			p.pending.retryNeeded = true
		}
	}
}

// isTimeout reports whether err represents a read timeout rather than a
// hard I/O failure. The underlying transport (github.com/daedaluz/goserial,
// via fdev's poller) does not export a dedicated sentinel, so this
// recognises the standard library's deadline error plus the common POSIX
// spellings by message, matching how the original bridge distinguished a
// read timeout from every other I/O error.
func isTimeout(err error) bool {
	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var te interface{ Timeout() bool }
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "timed out")
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
