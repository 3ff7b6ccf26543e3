package arena

import (
	"flag"
	"math"

	"github.com/c2h5oh/datasize"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultCapacity is the reservation size used when none is configured.
const DefaultCapacity = 64 * datasize.MB

// Config configures a LinearAllocator.
type Config struct {
	Name           string            `yaml:"name"`
	Capacity       datasize.ByteSize `yaml:"capacity"`
	ReleaseOnReset bool              `yaml:"release_on_reset"`
}

// RegisterFlags registers the flags under the "arena." prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("arena.", f)
}

// RegisterFlagsWithPrefix registers the flags with every name prefixed.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Name, prefix+"name", "default", "Name of the arena, used as the metrics label.")
	f.TextVar(&cfg.Capacity, prefix+"capacity", DefaultCapacity, "Bytes of address space to reserve, such as 64MB.")
	f.BoolVar(&cfg.ReleaseOnReset, prefix+"release-on-reset", false, "Return committed pages to the operating system on every full reset.")
}

// Validate checks the config.
func (cfg *Config) Validate() error {
	if cfg.Name == "" {
		return errors.New("arena name must not be empty")
	}
	if cfg.Capacity.Bytes() > math.MaxInt {
		return errors.Errorf("arena capacity %s exceeds the address space", cfg.Capacity.HumanReadable())
	}
	return nil
}

// NewLinearFromConfig validates cfg and creates a LinearAllocator from it.
// Metrics are registered with reg unless it is nil. opts are applied after
// the configured ones.
func NewLinearFromConfig(cfg Config, logger log.Logger, reg prometheus.Registerer, opts ...Option) (*LinearAllocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid arena config")
	}

	if logger == nil {
		logger = log.NewNopLogger()
	}
	base := []Option{
		WithLogger(log.With(logger, "arena", cfg.Name)),
		WithReleaseOnReset(cfg.ReleaseOnReset),
	}
	if reg != nil {
		m, err := NewMetrics(reg, cfg.Name)
		if err != nil {
			return nil, err
		}
		base = append(base, WithMetrics(m))
	}
	return NewLinear(int(cfg.Capacity.Bytes()), append(base, opts...)...)
}
