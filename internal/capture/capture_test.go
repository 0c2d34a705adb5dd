package capture

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesBothStreams(t *testing.T) {
	out, err := Run(Options{}, func() {
		fmt.Println("hello out")
		fmt.Fprint(os.Stderr, "hello error")
	})
	require.NoError(t, err)

	assert.Equal(t, "hello out\n", string(out.Stdout))
	assert.Equal(t, "hello error", string(out.Stderr))
	assert.False(t, out.Empty())
}

func TestRunPreservesWriteOrder(t *testing.T) {
	out, err := Run(Options{}, func() {
		for i := 0; i < 1000; i++ {
			fmt.Printf("line %d\n", i)
		}
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out.Stdout), "\n"), "\n")
	require.Len(t, lines, 1000)
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("line %d", i), line)
	}
}

func TestNothingWritten(t *testing.T) {
	out, err := Run(Options{}, func() {})
	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Empty(t, out.Stdout)
	assert.Empty(t, out.Stderr)
}

func TestStreamsRestored(t *testing.T) {
	stdout, stderr := os.Stdout, os.Stderr
	logrusOut := logrus.StandardLogger().Out
	logOut := log.Writer()

	assertRestored := func(t *testing.T) {
		assert.Same(t, stdout, os.Stdout)
		assert.Same(t, stderr, os.Stderr)
		assert.Equal(t, logrusOut, logrus.StandardLogger().Out)
		assert.Equal(t, logOut, log.Writer())
	}

	t.Run("normal return", func(t *testing.T) {
		_, err := Run(Options{}, func() { fmt.Println("x") })
		require.NoError(t, err)
		assertRestored(t)
	})

	t.Run("panic", func(t *testing.T) {
		assert.Panics(t, func() {
			Run(Options{}, func() { panic("boom") })
		})
		assertRestored(t)
	})

	t.Run("goexit", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			Run(Options{}, func() { runtime.Goexit() })
		}()
		wg.Wait()
		assertRestored(t)
	})
}

func TestLoggersFollowStderr(t *testing.T) {
	logrusOut := logrus.StandardLogger().Out
	logrus.SetOutput(os.Stderr)
	defer logrus.SetOutput(logrusOut)

	logOut := log.Writer()
	log.SetOutput(os.Stderr)
	defer log.SetOutput(logOut)

	out, err := Run(Options{}, func() {
		logrus.Info("from logrus")
		log.Print("from log")
	})
	require.NoError(t, err)

	assert.Contains(t, string(out.Stderr), "from logrus")
	assert.Contains(t, string(out.Stderr), "from log")
	assert.Empty(t, out.Stdout)
}

func TestTruncation(t *testing.T) {
	out, err := Run(Options{MaxBytes: 8}, func() {
		fmt.Print("0123456789abcdef")
	})
	require.NoError(t, err)

	assert.Equal(t, "89abcdef", string(out.Stdout))
	assert.EqualValues(t, 16, out.StdoutTotal)
	assert.True(t, out.StdoutTruncated)
	assert.False(t, out.StderrTruncated)
}

func TestStopIsIdempotent(t *testing.T) {
	c, err := Start(Options{})
	require.NoError(t, err)

	fmt.Print("once")
	first := c.Stop()
	second := c.Stop()

	assert.Equal(t, "once", string(first.Stdout))
	assert.Equal(t, first, second)
}

func TestCapturesAreExclusive(t *testing.T) {
	first, err := Start(Options{})
	require.NoError(t, err)

	started := make(chan *Capture)
	go func() {
		second, err := Start(Options{})
		if err != nil {
			close(started)
			return
		}
		started <- second
	}()

	select {
	case <-started:
		t.Fatal("second capture started while the first one was active")
	case <-time.After(100 * time.Millisecond):
	}

	first.Stop()

	select {
	case second, ok := <-started:
		require.True(t, ok, "second capture failed to start")
		second.Stop()
	case <-time.After(5 * time.Second):
		t.Fatal("second capture did not start after the first one stopped")
	}
}

func TestTeeForwardsToOriginalStreams(t *testing.T) {
	stdout, stderr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = outW, errW
	defer func() {
		os.Stdout, os.Stderr = stdout, stderr
	}()

	out, err := Run(Options{Tee: true}, func() {
		fmt.Println("live out")
		fmt.Fprintln(os.Stderr, "live err")
	})
	require.NoError(t, err)

	// The original streams are back in place after the capture.
	assert.Same(t, outW, os.Stdout)
	assert.Same(t, errW, os.Stderr)
	os.Stdout, os.Stderr = stdout, stderr

	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())
	forwardedOut, err := io.ReadAll(outR)
	require.NoError(t, err)
	forwardedErr, err := io.ReadAll(errR)
	require.NoError(t, err)

	assert.Equal(t, "live out\n", string(out.Stdout))
	assert.Equal(t, "live err\n", string(out.Stderr))
	assert.Equal(t, "live out\n", string(forwardedOut))
	assert.Equal(t, "live err\n", string(forwardedErr))
}
