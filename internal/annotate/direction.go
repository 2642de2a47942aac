package annotate

// Direction is the classification bucket of a relationship group.
type Direction int

const (
	// NonDirectional statements contribute to the rendered text and the
	// evidence total but never to the directed flags.
	NonDirectional Direction = iota
	Forward
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "non-directional"
	}
}

// nonDirectionalTypes are the statement types that carry no direction.
var nonDirectionalTypes = map[string]bool{
	"ActiveForm":  true,
	"Association": true,
	"Complex":     true,
	"Migration":   true,
}

// statementTypes is the fixed enumeration of interaction kinds the
// extraction service emits.
var statementTypes = map[string]bool{
	"Acetylation":           true,
	"Activation":            true,
	"ActiveForm":            true,
	"Association":           true,
	"Autophosphorylation":   true,
	"Binds":                 true,
	"Complex":               true,
	"Conversion":            true,
	"Deacetylation":         true,
	"DecreaseAmount":        true,
	"Defarnesylation":       true,
	"Degeranylgeranylation": true,
	"Deglycosylation":       true,
	"Dehydroxylation":       true,
	"Demethylation":         true,
	"Demyristoylation":      true,
	"Depalmitoylation":      true,
	"Dephosphorylation":     true,
	"Deribosylation":        true,
	"Desumoylation":         true,
	"Deubiquitination":      true,
	"Event":                 true,
	"Farnesylation":         true,
	"Gap":                   true,
	"Gef":                   true,
	"Geranylgeranylation":   true,
	"Glycosylation":         true,
	"GtpActivation":         true,
	"Hydroxylation":         true,
	"IncreaseAmount":        true,
	"Influence":             true,
	"Inhibition":            true,
	"Methylation":           true,
	"Migration":             true,
	"Modification":          true,
	"Myristoylation":        true,
	"Palmitoylation":        true,
	"Phosphorylation":       true,
	"RegulateActivity":      true,
	"RegulateAmount":        true,
	"Ribosylation":          true,
	"SelfModification":      true,
	"Sumoylation":           true,
	"Translocation":         true,
	"Transphosphorylation":  true,
	"Ubiquitination":        true,
}

// KnownType reports whether the type is part of the enumeration.
func KnownType(stmtType string) bool {
	return statementTypes[stmtType]
}

// Classify assigns a group to a direction bucket. Types outside the
// enumeration fail safe toward non-directional; ok is false so the
// caller can surface the anomaly.
func Classify(g RelationshipGroup) (dir Direction, ok bool) {
	if !KnownType(g.Type) {
		return NonDirectional, false
	}
	if nonDirectionalTypes[g.Type] {
		return NonDirectional, true
	}
	if g.Reversed {
		return Reverse, true
	}
	return Forward, true
}
