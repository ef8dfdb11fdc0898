package main

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestContext(t *testing.T, logLevel string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", logLevel, "")
	return cli.NewContext(nil, set, nil)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"WARN", false},
		{"error", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := setupLogger(newTestContext(t, tt.level))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetupLoggerSetsLevel(t *testing.T) {
	require.NoError(t, setupLogger(newTestContext(t, "error")))
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))

	require.NoError(t, setupLogger(newTestContext(t, "debug")))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
}

func TestCommonFlags(t *testing.T) {
	flags := commonFlags()

	var dbFlag, hostFlag *cli.StringFlag
	for _, f := range flags {
		if sf, ok := f.(*cli.StringFlag); ok {
			switch sf.Name {
			case "db":
				dbFlag = sf
			case "host":
				hostFlag = sf
			}
		}
	}

	require.NotNil(t, dbFlag)
	assert.True(t, dbFlag.Required, "db flag must be required")

	require.NotNil(t, hostFlag)
	assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
}
