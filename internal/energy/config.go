package energy

import (
	"strings"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/apperr"
)

// DefaultMethods is the backend order tried when nothing else is configured.
var DefaultMethods = []Method{MethodRAPL, MethodHwmon, MethodModel}

type Config struct {
	Methods    []Method
	SysfsPath  string
	PowerModel PowerModel
}

func DefaultConfig() Config {
	return Config{
		Methods:    DefaultMethods,
		SysfsPath:  "/sys",
		PowerModel: DefaultPowerModel(),
	}
}

// ParseMethods parses backend names, ignoring blanks and duplicates.
func ParseMethods(names []string) ([]Method, error) {
	var methods []Method
	seen := make(map[Method]bool, len(names))
	for _, n := range names {
		m := Method(strings.ToLower(strings.TrimSpace(n)))
		if m == "" || seen[m] {
			continue
		}
		switch m {
		case MethodRAPL, MethodHwmon, MethodModel:
		default:
			return nil, apperr.NewValidationf("unknown energy backend %q, expected one of %v", n, DefaultMethods)
		}
		seen[m] = true
		methods = append(methods, m)
	}
	return methods, nil
}

// NewMeterFromConfig builds the backend chain in configured order.
// The model backend is always the last resort, even when not listed.
func NewMeterFromConfig(cfg Config) (*Meter, error) {
	if err := cfg.PowerModel.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid power model", err)
	}

	methods := cfg.Methods
	if len(methods) == 0 {
		methods = DefaultMethods
	}

	model := NewModelBackend(cfg.PowerModel, nil)
	backends := make([]Backend, 0, len(methods)+1)
	for _, m := range methods {
		switch m {
		case MethodRAPL:
			backends = append(backends, NewRAPLBackend(cfg.SysfsPath))
		case MethodHwmon:
			backends = append(backends, NewHwmonBackend(cfg.SysfsPath))
		case MethodModel:
			// placed last below
		default:
			return nil, apperr.NewValidationf("unknown energy backend %q", m)
		}
	}
	backends = append(backends, model)

	return NewMeter(backends...), nil
}
