package common

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	logsource  = make(logwriters)
	logbarrier = sync.WaitGroup{}

	// logInterceptor lets a terminal owner (like the menu in raw mode)
	// hold back log lines that would otherwise tear its output.
	logInterceptor func(message string) bool
	logMu          sync.RWMutex

	stdoutWriter io.Writer = os.Stdout
	stderrWriter io.Writer = os.Stderr
)

// SetLogInterceptor sets a function that intercepts log messages.
// Returning true marks the message handled and it is not printed.
func SetLogInterceptor(interceptor func(message string) bool) {
	logMu.Lock()
	logInterceptor = interceptor
	logMu.Unlock()
}

func ClearLogInterceptor() {
	logMu.Lock()
	logInterceptor = nil
	logMu.Unlock()
}

// RedirectOutput swaps stdout and stderr targets and returns a function
// restoring the previous ones. Used by tests.
func RedirectOutput(stdout, stderr io.Writer) func() {
	logMu.Lock()
	oldOut, oldErr := stdoutWriter, stderrWriter
	stdoutWriter, stderrWriter = stdout, stderr
	logMu.Unlock()
	return func() {
		WaitLogs()
		logMu.Lock()
		stdoutWriter, stderrWriter = oldOut, oldErr
		logMu.Unlock()
	}
}

func stdout() io.Writer {
	logMu.RLock()
	defer logMu.RUnlock()
	return stdoutWriter
}

func stderr() io.Writer {
	logMu.RLock()
	defer logMu.RUnlock()
	return stderrWriter
}

func interceptLog(message string) bool {
	logMu.RLock()
	interceptor := logInterceptor
	logMu.RUnlock()

	if interceptor != nil {
		return interceptor(message)
	}
	return false
}

type logwriter func() (io.Writer, string)
type logwriters chan logwriter

type syncer interface {
	Sync() error
}

func loggerLoop(writers logwriters) {
	var stamp string
	line := uint64(0)
	for {
		line += 1
		todo, ok := <-writers
		if !ok {
			continue
		}
		out, message := todo()

		if TraceFlag() {
			stamp = time.Now().Format("02.150405.000 ")
		} else if LogLinenumbers {
			stamp = fmt.Sprintf("%3d ", line)
		} else {
			stamp = ""
		}
		fmt.Fprintf(out, "%s%s\n", stamp, message)
		if it, ok := out.(syncer); ok {
			it.Sync()
		}
		logbarrier.Done()
	}
}

func init() {
	go loggerLoop(logsource)
}

func AcceptableOutput(message string) bool {
	for _, fragment := range LogHides {
		if strings.Contains(message, fragment) {
			return false
		}
	}
	return true
}

func printout(out io.Writer, message string) {
	if AcceptableOutput(message) {
		if interceptLog(message) {
			return
		}
		logbarrier.Add(1)
		logsource <- func() (io.Writer, string) {
			return out, message
		}
	}
}

func Uncritical(context string, err error) {
	if err != nil {
		Log("Warning [%s; not critical]: %v", context, err)
	}
}

func Log(format string, details ...interface{}) {
	if !Silent() {
		prefix := ""
		if DebugFlag() || TraceFlag() {
			prefix = "[N] "
		}
		printout(stderr(), fmt.Sprintf(prefix+format, details...))
	}
}

func Debug(format string, details ...interface{}) error {
	if DebugFlag() {
		printout(stderr(), fmt.Sprintf("[D] "+format, details...))
	}
	return nil
}

func Trace(format string, details ...interface{}) error {
	if TraceFlag() {
		printout(stderr(), fmt.Sprintf("[T] "+format, details...))
	}
	return nil
}

func Stdout(format string, details ...interface{}) {
	message := format
	if len(details) > 0 {
		message = fmt.Sprintf(format, details...)
	}
	if AcceptableOutput(message) {
		out := stdout()
		fmt.Fprint(out, message)
		if it, ok := out.(syncer); ok {
			it.Sync()
		}
	}
}

func WaitLogs() {
	runtime.Gosched()
	logbarrier.Wait()
}

// HoldLogs buffers log lines until the returned release is called, which
// prints them in original order.
func HoldLogs() func() {
	var mu sync.Mutex
	held := []string{}
	SetLogInterceptor(func(message string) bool {
		mu.Lock()
		defer mu.Unlock()
		held = append(held, message)
		return true
	})
	return func() {
		ClearLogInterceptor()
		mu.Lock()
		defer mu.Unlock()
		for _, message := range held {
			printout(stderr(), message)
		}
		held = nil
	}
}
