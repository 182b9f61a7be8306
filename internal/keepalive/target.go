package keepalive

import "strings"

// TargetKind distingue los dos modos de probe contra la dependencia.
type TargetKind int

const (
	// TargetTableRead hace una lectura head-only sobre una tabla.
	TargetTableRead TargetKind = iota
	// TargetRPCCall invoca una función almacenada sin argumentos.
	TargetRPCCall
)

// Target es el objetivo del probe, parseado UNA vez al cargar config.
// El formato crudo admite "tabla" o "rpc:funcion".
type Target struct {
	Kind TargetKind
	Name string
}

const defaultTargetName = "keepalive_meta"

// ParseTarget interpreta el valor crudo de configuración. Vacío cae al
// default; el prefijo "rpc:" (case-insensitive) selecciona el modo RPC.
func ParseTarget(raw string) Target {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{Kind: TargetTableRead, Name: defaultTargetName}
	}
	if len(raw) >= 4 && strings.EqualFold(raw[:4], "rpc:") {
		name := strings.TrimSpace(raw[4:])
		if name == "" {
			return Target{Kind: TargetTableRead, Name: defaultTargetName}
		}
		return Target{Kind: TargetRPCCall, Name: name}
	}
	return Target{Kind: TargetTableRead, Name: raw}
}

func (t Target) String() string {
	if t.Kind == TargetRPCCall {
		return "rpc " + t.Name
	}
	return "select " + t.Name + " head limit 1"
}
