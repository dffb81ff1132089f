package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/futures-bot/src/models"
)

func TestExportToCsv(t *testing.T) {
	t.Run("writes orders and reads them back", func(t *testing.T) {
		outDir := t.TempDir()

		orders := []*models.FuturesOrderDTO{
			{OrderID: 1, ClientOrderID: "bot-1", Symbol: "BTCUSDT", Status: "FILLED", Side: "BUY", Type: "MARKET", OrigQty: "0.002", ExecutedQty: "0.002", AvgPrice: "60000.00", UpdateTime: 1723708800000},
			{OrderID: 2, ClientOrderID: "bot-2", Symbol: "BTCUSDT", Status: "NEW", Side: "SELL", Type: "LIMIT", Price: "61000.00", OrigQty: "0.002", ExecutedQty: "0", UpdateTime: 1723708900000},
		}

		csvPath, err := ExportToCsv(outDir, orders, "order_history")
		require.Nil(t, err)

		file, err := os.Open(csvPath)
		require.Nil(t, err)
		defer file.Close()

		var reloaded []*models.FuturesOrderDTO
		require.Nil(t, gocsv.UnmarshalFile(file, &reloaded))

		require.Len(t, reloaded, 2)
		assert.Equal(t, int64(1), reloaded[0].OrderID)
		assert.Equal(t, "FILLED", reloaded[0].Status)
		assert.Equal(t, "61000.00", reloaded[1].Price)
	})

	t.Run("creates the output directory if missing", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "output")

		csvPath, err := ExportToCsv(outDir, []*models.FuturesOrderDTO{{OrderID: 1, Symbol: "BTCUSDT"}}, "order_history")
		require.Nil(t, err)

		_, err = os.Stat(csvPath)
		assert.Nil(t, err)
	})
}
