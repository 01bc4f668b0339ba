package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusRecibido, StatusEnPreparacion, StatusListo, StatusEntregado, StatusCompletado} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("pendiente"))
	assert.False(t, ValidStatus(""))
}

func TestValidOrderType(t *testing.T) {
	assert.True(t, ValidOrderType(OrderTypeDelivery))
	assert.True(t, ValidOrderType(OrderTypeDineIn))
	assert.False(t, ValidOrderType("takeout"))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Tu orden está en preparación", StatusMessage(StatusEnPreparacion))
	assert.Equal(t, "¡Tu orden está lista!", StatusMessage(StatusListo))
	assert.Equal(t, "Tu orden ha sido entregada", StatusMessage(StatusEntregado))
	assert.Equal(t, "Orden completada", StatusMessage(StatusCompletado))
}

func TestStatusMessageFallback(t *testing.T) {
	assert.Equal(t, "Estado actualizado: limbo", StatusMessage("limbo"))
	assert.Equal(t, "Estado actualizado: recibido", StatusMessage(StatusRecibido))
}

func TestActiveStatusesExcludeTerminal(t *testing.T) {
	assert.NotContains(t, ActiveStatuses(), StatusCompletado)
	assert.Len(t, ActiveStatuses(), 4)
}
