// Package capture redirects the process-wide standard output and standard
// error streams into in-memory buffers.
//
// Only one capture can be active at a time: Start blocks until the previous
// capture has been stopped. Every destination swapped by Start is restored by
// Stop, and Run guarantees Stop is called however the captured function
// exits.
package capture

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Held from Start to Stop.
var streamLock sync.Mutex

type Options struct {
	// Also forward everything written to the original streams as it is
	// written.
	Tee bool

	// Maximum number of bytes kept per stream. Zero means DefaultMaxBytes.
	MaxBytes int
}

// Output is the content written to both streams while a capture was active.
type Output struct {
	Stdout          []byte
	Stderr          []byte
	StdoutTotal     int64
	StderrTotal     int64
	StdoutTruncated bool
	StderrTruncated bool
}

// Empty returns true if nothing was written to either stream.
func (o Output) Empty() bool {
	return o.StdoutTotal == 0 && o.StderrTotal == 0
}

type Capture struct {
	stdout *streamBuffer
	stderr *streamBuffer

	origStdout *os.File
	origStderr *os.File

	// Set only when the corresponding logger was writing to the original
	// stderr and has therefore been redirected.
	origLogrusOut io.Writer
	origLogOut    io.Writer

	stdoutW *os.File
	stderrW *os.File

	drains   sync.WaitGroup
	stopOnce sync.Once
	output   Output
}

// Start redirects os.Stdout and os.Stderr to fresh buffers. The logrus
// standard logger and the log package's default logger follow os.Stderr when
// they currently write to it.
func Start(opts Options) (*Capture, error) {
	streamLock.Lock()

	outR, outW, err := os.Pipe()
	if err != nil {
		streamLock.Unlock()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		streamLock.Unlock()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	c := &Capture{
		stdout:     newStreamBuffer(opts.MaxBytes),
		stderr:     newStreamBuffer(opts.MaxBytes),
		origStdout: os.Stdout,
		origStderr: os.Stderr,
		stdoutW:    outW,
		stderrW:    errW,
	}

	c.drain(outR, c.stdout, c.origStdout, opts.Tee)
	c.drain(errR, c.stderr, c.origStderr, opts.Tee)

	os.Stdout = outW
	os.Stderr = errW

	std := logrus.StandardLogger()
	if std.Out == c.origStderr {
		c.origLogrusOut = std.Out
		std.SetOutput(errW)
	}

	if log.Writer() == c.origStderr {
		c.origLogOut = log.Writer()
		log.SetOutput(errW)
	}

	return c, nil
}

func (c *Capture) drain(r *os.File, buf *streamBuffer, orig *os.File, tee bool) {
	var dst io.Writer = buf
	if tee {
		dst = io.MultiWriter(buf, orig)
	}

	c.drains.Add(1)
	go func() {
		defer c.drains.Done()
		defer r.Close()
		// Errors can only come from the tee destination; the buffer never
		// fails, so keep reading whatever happens.
		if _, err := io.Copy(dst, r); err != nil {
			io.Copy(buf, r)
		}
	}()
}

// Stop restores all redirected destinations and returns what was captured.
// It is safe to call Stop more than once; later calls return the same output.
//
// Stop waits until every writer of the pipes is closed. A child process that
// inherited a captured stream and outlives the test case delays Stop until it
// exits.
func (c *Capture) Stop() Output {
	c.stopOnce.Do(func() {
		os.Stdout = c.origStdout
		os.Stderr = c.origStderr

		if c.origLogrusOut != nil {
			logrus.SetOutput(c.origLogrusOut)
		}

		if c.origLogOut != nil {
			log.SetOutput(c.origLogOut)
		}

		c.stdoutW.Close()
		c.stderrW.Close()
		c.drains.Wait()

		c.output.Stdout, c.output.StdoutTotal, c.output.StdoutTruncated = c.stdout.snapshot()
		c.output.Stderr, c.output.StderrTotal, c.output.StderrTruncated = c.stderr.snapshot()

		streamLock.Unlock()
	})

	return c.output
}

// Run calls f with both streams captured. The streams are restored even when
// f panics or calls runtime.Goexit.
func Run(opts Options, f func()) (Output, error) {
	c, err := Start(opts)
	if err != nil {
		return Output{}, err
	}
	defer c.Stop()

	f()

	return c.Stop(), nil
}
