// Command arenactl exercises the arena allocators: it runs the rollback and
// in-place resize scenarios, builds hash sets on a linear allocator and
// reports allocator statistics.
package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	arena "github.com/pavanmanishd/arena/v2"
)

// app holds the state shared by every command.
type app struct {
	configFile string
	logLevel   string
	capacity   string

	cfg    arena.Config
	logger log.Logger
}

func main() {
	a := &app{}
	ka := kingpin.New("arenactl", "Exercise virtual-memory arena allocators.")
	ka.HelpFlag.Short('h')
	ka.Flag("config.file", "Optional YAML file with the arena configuration.").StringVar(&a.configFile)
	ka.Flag("log.level", "Only log messages with the given severity or above. One of: [debug, info, warn, error]").
		Default("info").EnumVar(&a.logLevel, "debug", "info", "warn", "error")
	ka.Flag("arena.capacity", "Bytes of address space to reserve, overriding the config file, such as 64MB.").StringVar(&a.capacity)
	ka.PreAction(a.setup)

	addRollbackCommand(ka, a)
	addResizeCommand(ka, a)
	addHashsetCommand(ka, a)
	addStatsCommand(ka, a)

	kingpin.MustParse(ka.Parse(os.Args[1:]))
}

func (a *app) setup(*kingpin.ParseContext) error {
	a.logger = newLogger(a.logLevel)

	cfg, err := loadConfig(a.configFile, a.capacity)
	if err != nil {
		return err
	}
	a.cfg = cfg
	level.Debug(a.logger).Log("msg", "loaded config", "name", cfg.Name, "capacity", cfg.Capacity.HumanReadable())
	return nil
}

// newAllocator creates the configured allocator. Fatal allocator conditions
// are logged before the process exits.
func (a *app) newAllocator() *arena.LinearAllocator {
	la, err := arena.NewLinearFromConfig(a.cfg, a.logger, nil, arena.WithFatalHandler(arena.ExitOnFatal(a.logger)))
	if err != nil {
		exitWithErr(err)
	}
	return la
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// exitWithErr reports err with the platform error code behind it, if any,
// and exits with status 1.
func exitWithErr(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintln(os.Stderr, "error:", err)
	if detail := describe(err); detail != "" {
		fmt.Fprintln(os.Stderr, "  "+detail)
	}
	os.Exit(1)
}

// describe names the platform error at the root of err.
func describe(err error) string {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	return fmt.Sprintf("platform error 0x%08X: %s", uint32(errno), strings.TrimSpace(errno.Error()))
}
