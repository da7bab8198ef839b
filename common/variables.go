package common

import (
	"os"
	"sync/atomic"
)

const (
	PRODUCT_NAME           = `subspace`
	SUBSPACE_HOME_VARIABLE = `SUBSPACE_HOME`
	SUBSPACE_ENV_PREFIX    = `SUBSPACE`
)

var (
	Version        = `v0.5.3`
	LogLinenumbers bool
	LogHides       []string

	silentFlag atomic.Bool
	debugFlag  atomic.Bool
	traceFlag  atomic.Bool
)

func init() {
	LogLinenumbers = len(os.Getenv("SUBSPACE_LOG_LINENUMBERS")) > 0
}

// DefineVerbosity sets global output level. Trace implies debug.
func DefineVerbosity(silent, debug, trace bool) {
	silentFlag.Store(silent && !debug && !trace)
	debugFlag.Store(debug || trace)
	traceFlag.Store(trace)
}

func Silent() bool {
	return silentFlag.Load()
}

func DebugFlag() bool {
	return debugFlag.Load()
}

func TraceFlag() bool {
	return traceFlag.Load()
}
