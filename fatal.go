package arena

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// FatalHandler receives conditions an allocator cannot recover from, such as
// size arithmetic overflow or a failure to release its reservation. If the
// handler returns, the failing call reports err to its caller.
type FatalHandler func(err error)

// PanicOnFatal panics with err. It is the default handler.
func PanicOnFatal(err error) {
	panic(err)
}

// ExitOnFatal returns a handler that logs err at error level and terminates
// the process with status 2.
func ExitOnFatal(logger log.Logger) FatalHandler {
	return func(err error) {
		level.Error(logger).Log("msg", "fatal allocator error", "err", err)
		os.Exit(2)
	}
}
