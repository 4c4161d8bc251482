package scanner

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
)

// Factory creates a strategy for one configured scanner.
type Factory func(cfg config.ScannerConfig, contracts *registry.Registry, log *logger.Logger) (Strategy, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register registers a strategy factory under the given kind name.
// This is typically called in init() functions of strategy packages.
// The kind name is case-insensitive and will be stored in lowercase.
func Register(kind string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	name := strings.ToLower(kind)
	if _, exists := factories[name]; exists {
		logger.GetDefaultLogger().Infof("strategy %s already registered, it will be overwritten", name)
	}

	factories[name] = factory
}

// GetFactory returns the factory for the given kind, or nil if none is registered.
// The lookup is case-insensitive.
func GetFactory(kind string) Factory {
	mu.RLock()
	defer mu.RUnlock()
	return factories[strings.ToLower(kind)]
}

// ListRegistered returns the registered kind names in sorted order.
func ListRegistered() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Create builds the strategy for cfg.Kind using the registered factory.
func Create(cfg config.ScannerConfig, contracts *registry.Registry, log *logger.Logger) (Strategy, error) {
	factory := GetFactory(cfg.Kind)
	if factory == nil {
		return nil, fmt.Errorf("unknown scanner kind: %s (registered kinds: %v)", cfg.Kind, ListRegistered())
	}

	strategy, err := factory(cfg, contracts, log)
	if err != nil {
		return nil, fmt.Errorf("create %s strategy: %w", cfg.Kind, err)
	}

	switch strategy.(type) {
	case LogStrategy, BlockStrategy:
		return strategy, nil
	default:
		return nil, fmt.Errorf("strategy %T for kind %s is neither a log nor a block strategy", strategy, cfg.Kind)
	}
}
