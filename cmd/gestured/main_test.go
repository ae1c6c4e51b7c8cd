package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/99minutos/gesture-portal/pkg/logger"
)

func TestRun_ConfigFailureIsReported(t *testing.T) {
	logger.Reset()
	t.Cleanup(logger.Reset)
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	for _, cmd := range []string{"serve", "migrate"} {
		t.Run(cmd, func(t *testing.T) {
			err := newApp().RunContext(context.Background(), []string{"gestured", cmd})
			require.Error(t, err)
			require.Contains(t, err.Error(), "SESSION_SECRET")

			var buf bytes.Buffer
			reportFailure(&buf, err)
			out := buf.String()
			require.True(t, strings.Contains(out, "application failed"), "missing message in %q", out)
			require.Contains(t, out, "SESSION_SECRET")
		})
	}
}

func TestRun_MigrateSQLite(t *testing.T) {
	logger.Reset()
	t.Cleanup(logger.Reset)
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", t.TempDir()+"/site.db")

	require.NoError(t, newApp().RunContext(context.Background(), []string{"gestured", "migrate"}))
}
