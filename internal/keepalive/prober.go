package keepalive

import (
	"context"
	"errors"
)

// ErrMissingConfig indica que la dependencia no está configurada. No cuenta
// como fallo del probe.
var ErrMissingConfig = errors.New("keepalive: dependency not configured")

// Prober hace una lectura mínima autenticada contra la dependencia y
// devuelve un status numérico HTTP-like. La implementación real vive sobre
// el store de postgres; los tests inyectan fakes.
type Prober interface {
	Probe(ctx context.Context, target Target) (int, error)
}

// TableProber es lo que expone el store: una lectura por tabla o una llamada
// RPC. StoreProber lo adapta al Prober del servicio.
type TableProber interface {
	ProbeTableRead(ctx context.Context, table string) (int, error)
	ProbeRPCCall(ctx context.Context, fn string) (int, error)
}

type StoreProber struct {
	Store TableProber
}

func (p *StoreProber) Probe(ctx context.Context, target Target) (int, error) {
	if p == nil || p.Store == nil {
		return 0, ErrMissingConfig
	}
	if target.Kind == TargetRPCCall {
		return p.Store.ProbeRPCCall(ctx, target.Name)
	}
	return p.Store.ProbeTableRead(ctx, target.Name)
}
