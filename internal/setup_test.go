package internal

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)

	exitCode := m.Run()

	os.Exit(exitCode)
}

// newTestStore opens a fresh in-memory database closed at test cleanup.
func newTestStore(t *testing.T) (*SQLiteInterface, *sql.DB) {
	t.Helper()
	engine := DefaultSQLiteInterface()
	db, err := engine.CreateInMemoryStore(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close(db) })
	return engine, db
}
