package factory

import (
	"context"
	"fmt"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
	"github.com/lychee-technology/xrosedb/internal/store"
	"go.uber.org/zap"
)

// NewEngineWithConfig returns the SQLite query engine configured by config.
func NewEngineWithConfig(config *xrosedb.Config) (xrosedb.Interface, error) {
	if config == nil {
		config = xrosedb.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return internal.NewSQLiteInterface(config.Store, config.Logging), nil
}

// NewStoreWithConfig opens an in-memory document store. When
// config.Store.DocumentPath is set the document at that path is loaded.
//
// Usage:
//
//	import (
//	    "github.com/lychee-technology/xrosedb"
//	    "github.com/lychee-technology/xrosedb/factory"
//	)
//
//	config := xrosedb.DefaultConfig()
//	config.Store.DocumentPath = "rose.xrose"
//	s, err := factory.NewStoreWithConfig(ctx, config)
//	if err != nil {
//	    // handle error
//	}
//	defer s.Close()
func NewStoreWithConfig(ctx context.Context, config *xrosedb.Config) (*store.Store, error) {
	if config == nil {
		config = xrosedb.DefaultConfig()
	}
	engine, err := NewEngineWithConfig(config)
	if err != nil {
		return nil, err
	}

	driver := internal.Driver()
	zap.S().Debugw("opening document store",
		"driver", driver.DriverName,
		"driverType", driver.DriverType,
		"identifier", config.Store.Identifier,
		"document", config.Store.DocumentPath,
	)

	s, err := store.NewInMemoryStore(ctx, engine, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return s, nil
}
