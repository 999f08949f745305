package handlers

// User-facing messages. Internal error details never reach the client.
const (
	msgMissingBuyerFields = "Nombre y correo son obligatorios."
	msgCheckoutFailed     = "Error al crear la sesión de pago."
	msgMissingSessionID   = "Falta session_id"
	msgTicketSent         = "¡Boleto enviado correctamente! Revisa tu correo."
	msgTicketFailed       = "No se pudo enviar el boleto."
)
