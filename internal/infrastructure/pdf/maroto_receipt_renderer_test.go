package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

func TestRenderReceipt(t *testing.T) {
	sale := &entity.Sale{
		ID:           "0192b1c4-7f00-7000-8000-00000000abcd",
		Date:         time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC),
		CustomerName: "Rahim",
		Items: []entity.SaleLine{
			{ItemID: "A", ItemName: "Arroz", Quantity: 3, UnitPrice: decimal.NewFromInt(100), Unit: "kg"},
		},
		TotalAmount: decimal.NewFromInt(300),
		PaidAmount:  decimal.NewFromInt(200),
		DueAmount:   decimal.NewFromInt(100),
		Status:      entity.SaleStatusPending,
	}

	out, err := NewMarotoReceiptRenderer().RenderReceipt(context.Background(), ports.ShopInfo{Name: "Tienda", Symbol: "৳"}, sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewMarotoReceiptRenderer().RenderReceipt(context.Background(), ports.ShopInfo{}, nil)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "0000ABCD", receiptNumber("0192b1c4-7f00-7000-8000-00000000abcd"))
	assert.Equal(t, "", latin1("৳"))
	assert.Equal(t, "$", latin1("$"))
	assert.Equal(t, "-", nonEmpty("  ", "-"))
}
