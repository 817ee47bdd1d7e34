package ownership

import (
	"context"
	"errors"
	"strings"

	"dog-care-api/internal/platform/apperr"
)

// Chain expone las aristas de ownership del store. Devuelve apperr.ErrNotFound
// si la entidad no existe.
type Chain interface {
	Links(ctx context.Context, ref Ref) (Links, error)
}

// la cadena más larga hoy es care log -> task -> dog -> user
const maxDepth = 4

// Resolver responde "¿este usuario es dueño (directo o transitivo) de ref?".
// Cualquier fallo de autorización sale como NotFound: no se filtra si el
// registro existe para otro usuario.
type Resolver struct {
	chain Chain
}

func NewResolver(chain Chain) *Resolver {
	return &Resolver{chain: chain}
}

// Require falla con NotFound salvo que userID sea dueño de ref.
// Debe llamarse con el ctx de la transacción de la operación.
func (r *Resolver) Require(ctx context.Context, userID int64, ref Ref) error {
	ok, err := r.owns(ctx, userID, ref, 0)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(displayName(ref.Type))
	}
	return nil
}

// Owns es la versión booleana de Require.
func (r *Resolver) Owns(ctx context.Context, userID int64, ref Ref) (bool, error) {
	return r.owns(ctx, userID, ref, 0)
}

// RequireAll es todo-o-nada: alcanza con que una ref falle para rechazar.
// Devuelve la primera ref que falló.
func (r *Resolver) RequireAll(ctx context.Context, userID int64, refs []Ref) (Ref, error) {
	for _, ref := range refs {
		ok, err := r.owns(ctx, userID, ref, 0)
		if err != nil {
			return ref, err
		}
		if !ok {
			return ref, apperr.NotFound(displayName(ref.Type))
		}
	}
	return Ref{}, nil
}

func (r *Resolver) owns(ctx context.Context, userID int64, ref Ref, depth int) (bool, error) {
	if userID <= 0 || ref.ID <= 0 || depth > maxDepth {
		return false, nil
	}

	l, err := r.chain.Links(ctx, ref)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if l.OwnerUserID != nil {
		return *l.OwnerUserID == userID, nil
	}

	// cualquier camino válido alcanza
	for _, p := range l.Parents {
		ok, err := r.owns(ctx, userID, p, depth+1)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func displayName(t EntityType) string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", " ")
}
