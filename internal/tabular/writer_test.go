package tabular

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietbooks/ledgersync/internal/domain/ledger"
)

func mustAmount(t *testing.T, s string) ledger.Amount {
	t.Helper()
	a, err := ledger.ParseAmount(s)
	require.NoError(t, err)
	return a
}

func TestWriteLedger(t *testing.T) {
	records := []ledger.Record{
		{Product: "咖啡", PurchaseDate: "2024年3月1日", Amount: mustAmount(t, "50"), Category: "餐饮", Note: "CoffeeShop", Platform: "线下"},
		{Product: "Book", PurchaseDate: "2024年3月2日", Amount: mustAmount(t, "30"), Category: "Reading", Note: "Bookstore", Platform: "线下"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, records))

	want := "所购商品,数量,购买日期,金额（元）,类别,备注,购物平台\n" +
		"咖啡,,2024年3月1日,50.00,餐饮,CoffeeShop,线下\n" +
		"Book,,2024年3月2日,30.00,Reading,Bookstore,线下\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteLedger_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, nil))
	assert.Equal(t, "所购商品,数量,购买日期,金额（元）,类别,备注,购物平台\n", buf.String())
}

func TestWriteLedgerFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	records := []ledger.Record{
		{Product: "拿铁, 大杯", PurchaseDate: "2024年3月1日", Amount: mustAmount(t, "28"), Category: "餐饮", Note: "CoffeeShop", Platform: "线下"},
	}
	require.NoError(t, WriteLedgerFile(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	sc := NewScanner(f)
	require.True(t, sc.Next())
	row := sc.Row()
	assert.Equal(t, "拿铁, 大杯", row[ledger.ColProduct], "comma in a field survives the round trip")
	assert.Equal(t, "28.00", row[ledger.ColAmount])
	assert.False(t, sc.Next())
	require.NoError(t, sc.Err())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger_data.json")
	records := []ledger.Record{
		{Product: "咖啡", PurchaseDate: "2024年3月1日", Amount: mustAmount(t, "50"), Category: "餐饮", Note: "CoffeeShop", Platform: "线下"},
	}
	require.NoError(t, WriteSnapshot(path, records))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "咖啡", got[0].Product)
	assert.Equal(t, "50.00", got[0].Amount.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"金额（元）": 50.00`, "amount is an unquoted two-decimal number")
}

func TestWriteSnapshot_EmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger_data.json")
	require.NoError(t, WriteSnapshot(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestReadSnapshot_Errors(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = ReadSnapshot(path)
	assert.Error(t, err)
}
