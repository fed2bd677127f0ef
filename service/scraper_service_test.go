package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ci-computer-dashboard/models"
)

const cartTablePage = `<html><body>
<table class="data-table">
  <tr><th>Product</th><th>SKU</th><th>Price</th><th>Qty</th><th>Subtotal</th></tr>
  <tr><td>2.13inch e-Paper HAT</td><td>SKU: 12345</td><td>Price $15.99</td><td>x2</td><td>$31.98</td></tr>
  <tr><td>RS485 CAN HAT</td><td>17912</td><td>$13.99</td><td>1</td><td>$13.99</td></tr>
  <tr><td>Gift wrap</td><td></td><td></td><td></td></tr>
</table>
</body></html>`

const cartSKUPage = `<html><body>
<div class="wrap">
  <div>3 x</div>
  <div class="name">Sense HAT (B)</div>
  <div class="details">
    <div>SKU: 20046</div>
    <div>Part No.: SENSE-HAT-B</div>
    <div>Unit Price:</div><span>$24.99</span>
    <div>Subtotal:</div><span>$74.97</span>
  </div>
</div>
</body></html>`

func TestParseCartHTMLTable(t *testing.T) {
	items, err := ParseCartHTML(strings.NewReader(cartTablePage))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, models.CartItem{
		ProductName: "2.13inch e-Paper HAT",
		SKU:         "12345",
		UnitPrice:   "$15.99",
		Quantity:    2,
		Subtotal:    "$31.98",
	}, items[0])
	assert.Equal(t, "RS485 CAN HAT", items[1].ProductName)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestParseCartHTMLSKUBlocks(t *testing.T) {
	items, err := ParseCartHTML(strings.NewReader(cartSKUPage))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, models.CartItem{
		ProductName: "Sense HAT (B)",
		SKU:         "20046",
		PartNo:      "SENSE-HAT-B",
		UnitPrice:   "$24.99",
		Quantity:    3,
		Subtotal:    "$74.97",
	}, items[0])
}

func TestParseCartHTMLClassedRows(t *testing.T) {
	page := `<table><tr class="cart-item"><td>LCD Screen</td><td>SKU: 1</td><td>$9.00</td><td>Qty 4</td></tr></table>`

	items, err := ParseCartHTML(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Empty(t, items[0].Subtotal)
}

func TestParseCartHTMLNoItems(t *testing.T) {
	items, err := ParseCartHTML(strings.NewReader("<html><body><p>Your cart is empty</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScrapeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.html")
	require.NoError(t, os.WriteFile(path, []byte(cartTablePage), 0o644))

	svc := NewScraperService("")
	items, err := svc.ScrapeFile(path)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ScrapeFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestExtractHelpers(t *testing.T) {
	assert.Equal(t, "ABC-1", ExtractSKU("SKU: ABC-1"))
	assert.Equal(t, "ABC-1", ExtractSKU(" ABC-1 "))
	assert.Equal(t, 12, ExtractQuantity("Qty: 12"))
	assert.Equal(t, 1, ExtractQuantity("one"))
}

func TestPowerProfileFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Raspberry Pi 5 (8GB)", "Idle: ~2.7W, Peak: ~12W"},
		{"RS485 CAN HAT", "CAN interface module"},
		{"MCP2515 board", "CAN interface module"},
		{"7inch LCD", "Display module"},
		{"Temperature Sensor", "Sensor module"},
		{"GPIO Expansion Board", "HAT/Expansion board"},
		{"USB cable", "Generic accessory"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PowerProfileFor(tt.name).Notes, tt.name)
	}
	assert.Equal(t, 3.3, PowerProfileFor("Light Sensor").Voltage)
}

func TestAddPowerProfilesAndSummary(t *testing.T) {
	items, err := ParseCartHTML(strings.NewReader(cartTablePage))
	require.NoError(t, err)

	withPower := AddPowerProfiles(items)
	require.Len(t, withPower, 3)
	assert.Equal(t, "Raspberry Pi 5 (16GB)", withPower[2].ProductName)
	for _, item := range withPower {
		require.NotNil(t, item.Power, item.ProductName)
	}
	assert.Nil(t, items[0].Power)

	// an existing Pi 5 is not duplicated
	assert.Len(t, AddPowerProfiles(withPower), 3)

	sum := SummarizeCart(withPower)
	assert.Equal(t, "$125.97", sum.Total)
	assert.InDelta(t, 3.5, sum.PowerMinW, 1e-9)
	assert.InDelta(t, 13.5, sum.PowerMaxW, 1e-9)
	assert.Equal(t, 3, sum.SupplyAmps)
	assert.Equal(t, 18, sum.SupplyWatts)
}

func TestWriteCartCSV(t *testing.T) {
	items := AddPowerProfiles(nil)

	var buf bytes.Buffer
	require.NoError(t, WriteCartCSV(&buf, items))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Product Name,SKU,Part No.,Unit Price,Quantity,Subtotal,Voltage (V),Current (A),Power (W),Notes", lines[0])
	assert.Equal(t, `Raspberry Pi 5 (16GB),RPI5-16GB,RPI5-16GB,$80.00,1,$80.00,5.0,0.6 - 2.4,3.0 - 12.0,"Idle: ~2.7W, Peak: ~12W"`, lines[1])
}
