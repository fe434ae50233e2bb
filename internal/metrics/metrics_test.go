package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBill(t *testing.T) {
	m := New("test-run")

	m.RecordBill(decimal.RequireFromString("157.5"), decimal.RequireFromString("7.5"), decimal.Zero, 1)
	m.RecordBill(decimal.RequireFromString("950"), decimal.RequireFromString("50"), decimal.NewFromInt(100), 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BillsCreated))
	assert.InDelta(t, 1107.5, testutil.ToFloat64(m.SalesAmount), 1e-9)
	assert.InDelta(t, 57.5, testutil.ToFloat64(m.GSTCollected), 1e-9)
	assert.InDelta(t, 100.0, testutil.ToFloat64(m.DiscountGiven), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedItems))
}

func TestWriteTextfile(t *testing.T) {
	m := New("abc123")
	m.Operations.WithLabelValues("create_bill", "ok").Inc()

	path := filepath.Join(t.TempDir(), "kirana.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `kirana_operations_total{operation="create_bill",outcome="ok",run_id="abc123"} 1`), text)
}
