// Package order models the client-observed order lifecycle: the status
// values the server reports, the customer-facing progression, and the staff
// forward transitions. Transitions themselves are server-authoritative; the
// client only requests them.
package order

// Status is a server-reported order status. The set is owned by the API;
// unknown values must render, not fail (see Stage).
type Status string

const (
	StatusAwaitingPayment Status = "aguardando_pagamento"
	StatusPaymentDeclared Status = "pagamento_declarado"
	StatusPreparing       Status = "em_preparacao"
	StatusReady           Status = "pronto"
	StatusDelivered       Status = "entregue"
	StatusCancelled       Status = "cancelado"

	// StatusTab is a member order billed to the monthly tab: it skips the
	// pix payment steps and waits for staff confirmation.
	StatusTab Status = "conta"
)

// stages is the customer-visible progression, in display order.
var stages = []Status{
	StatusAwaitingPayment,
	StatusPaymentDeclared,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
}

var labels = map[Status]string{
	StatusAwaitingPayment: "Aguardando Pagamento",
	StatusPaymentDeclared: "Pagamento Declarado",
	StatusPreparing:       "Em Preparação",
	StatusReady:           "Pronto",
	StatusDelivered:       "Entregue",
	StatusCancelled:       "Cancelado",
	StatusTab:             "Na Conta",
}

// next is the staff forward map. Statuses absent here have no forward
// transition.
var next = map[Status]Status{
	StatusPaymentDeclared: StatusPreparing,
	StatusPreparing:       StatusReady,
	StatusReady:           StatusDelivered,
	StatusTab:             StatusPreparing,
}

var actionLabels = map[Status]string{
	StatusPaymentDeclared: "Confirmar Pagamento",
	StatusPreparing:       "Marcar como Pronto",
	StatusReady:           "Marcar como Entregue",
	StatusTab:             "Confirmar e Enviar à Cozinha",
}

// Stages returns the customer progression in display order.
func Stages() []Status {
	out := make([]Status, len(stages))
	copy(out, stages)
	return out
}

// Stage maps a status to its index in the customer progression. Unrecognized
// statuses display as the first stage rather than failing.
func Stage(s Status) int {
	for i, st := range stages {
		if st == s {
			return i
		}
	}
	return 0
}

// Terminal reports whether the order reached a final state.
func Terminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the staff forward transition for s, or empty when none
// exists.
func Next(s Status) Status {
	return next[s]
}

// Label is the pt-BR display name; unknown statuses fall back to the raw
// value.
func Label(s Status) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// ActionLabel is the pt-BR caption for the forward action from s, empty when
// no forward transition exists.
func ActionLabel(s Status) string {
	return actionLabels[s]
}
