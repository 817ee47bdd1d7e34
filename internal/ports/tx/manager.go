package tx

import "context"

// Manager ejecuta fn dentro de una única transacción.
// Los repos toman la transacción del ctx recibido por fn; si fn devuelve error
// no queda nada aplicado.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
