package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "abc")

	err := errors.New("boom")
	Time(ctx, "catalog.Load")(&err)

	require.Contains(t, buf.String(), "req_id=abc op=catalog.Load")
	require.Contains(t, buf.String(), "err=boom")
}

func TestTimeWithoutError(t *testing.T) {
	buf := captureLog(t)

	var err error
	Time(context.Background(), "op")(&err)

	require.Contains(t, buf.String(), "op=op")
	require.NotContains(t, buf.String(), "err=")
	require.Equal(t, "", RequestID(context.Background()))
}
