package files

import "context"

// Kind agrupa los archivos guardados (define subdirectorio / prefijo de URL).
type Kind string

const (
	KindAvatar  Kind = "dogs/avatars"
	KindGPX     Kind = "walks/gpx"
	KindInvoice Kind = "invoices"
)

var (
	AvatarTypes  = []string{"image/jpeg", "image/png"}
	GPXTypes     = []string{"text/xml", "application/xml", "application/gpx+xml"}
	InvoiceTypes = []string{"application/pdf", "image/jpeg", "image/png"}
)

// Storage guarda bytes y devuelve la URL pública a persistir en la entidad.
// Si el tipo detectado no está en allowed devuelve un error de validación ("invalid type").
type Storage interface {
	Store(ctx context.Context, kind Kind, data []byte, allowed []string) (string, error)
}
