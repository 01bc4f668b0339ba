package domain

// Order lifecycle statuses. The canonical forward path is
// recibido -> en_preparacion -> listo -> entregado -> completado.
// Historic rows may carry other strings; rendering falls back to a generic
// message for those.
const (
	StatusRecibido      = "recibido"
	StatusEnPreparacion = "en_preparacion"
	StatusListo         = "listo"
	StatusEntregado     = "entregado"
	StatusCompletado    = "completado"
)

// Order fulfillment modes.
const (
	OrderTypeDelivery = "delivery"
	OrderTypeDineIn   = "dine_in"
)

// User roles.
const (
	RoleCliente       = "cliente"
	RoleAdministrador = "administrador"
)

var knownStatuses = map[string]struct{}{
	StatusRecibido:      {},
	StatusEnPreparacion: {},
	StatusListo:         {},
	StatusEntregado:     {},
	StatusCompletado:    {},
}

// ValidStatus reports whether s belongs to the canonical status set.
func ValidStatus(s string) bool {
	_, ok := knownStatuses[s]
	return ok
}

// ValidOrderType reports whether t is a recognized fulfillment mode.
func ValidOrderType(t string) bool {
	return t == OrderTypeDelivery || t == OrderTypeDineIn
}

// ActiveStatuses are the non-terminal states during which a dine-in order
// keeps its table occupied.
func ActiveStatuses() []string {
	return []string{StatusRecibido, StatusEnPreparacion, StatusListo, StatusEntregado}
}

var statusMessages = map[string]string{
	StatusEnPreparacion: "Tu orden está en preparación",
	StatusListo:         "¡Tu orden está lista!",
	StatusEntregado:     "Tu orden ha sido entregada",
	StatusCompletado:    "Orden completada",
}

// StatusMessage returns the human-readable client message for a status,
// falling back to a generic text for out-of-set values.
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Estado actualizado: " + status
}
