package meta

import "fmt"

// Kind identifies where a component sits in a topology.
type Kind string

const (
	KindSource    Kind = "source"
	KindTransform Kind = "transform"
	KindSink      Kind = "sink"
)

// Kinds lists all component kinds in canonical order.
var Kinds = []Kind{KindSource, KindTransform, KindSink}

// ParseKind validates a raw kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSource, KindTransform, KindSink:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown component kind %q", s)
	}
}

// Plural returns the kind's plural form as used in doc paths
// ("sources", "transforms", "sinks").
func (k Kind) Plural() string { return string(k) + "s" }

// DeliveryGuarantee describes what a component promises about event delivery.
type DeliveryGuarantee string

const (
	AtLeastOnce DeliveryGuarantee = "at_least_once"
	BestEffort  DeliveryGuarantee = "best_effort"
)

// Title returns the human form used in derived section bodies.
func (g DeliveryGuarantee) Title() string {
	switch g {
	case AtLeastOnce:
		return "At least once"
	case BestEffort:
		return "Best effort"
	default:
		return string(g)
	}
}

func parseDeliveryGuarantee(component, raw string) (DeliveryGuarantee, error) {
	switch DeliveryGuarantee(raw) {
	case AtLeastOnce, BestEffort:
		return DeliveryGuarantee(raw), nil
	default:
		return "", schemaErrf(component, "delivery_guarantee",
			"must be one of %q or %q, got %q", AtLeastOnce, BestEffort, raw)
	}
}
