// internal/order/order_model_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_BeforeCreate(t *testing.T) {
	o := &Order{}

	err := o.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status, "Status default harus pending")
	assert.False(t, o.OrderDate.IsZero(), "OrderDate harus terisi otomatis")
}

func TestOrder_BeforeCreate_KeepsExistingStatus(t *testing.T) {
	o := &Order{Status: StatusProses}

	err := o.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, StatusProses, o.Status)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusProses))
	assert.True(t, ValidStatus(StatusSelesai))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}
