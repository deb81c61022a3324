package entities

import (
	"fmt"
	"time"
)

// StrategyKind selects how a gateway strategy is called.
type StrategyKind string

const (
	StrategyKindHTTP        StrategyKind = "http"
	StrategyKindMercadoPago StrategyKind = "mercadopago"
)

// GatewayStrategy is one configured payment provider attempt.
//
// Payload names a registered body builder (see payments.PayloadBuilders) so the
// request shape stays data, not code. Headers are already env-expanded.
type GatewayStrategy struct {
	Name        string
	Kind        StrategyKind
	URL         string
	Headers     map[string]string
	Payload     string
	Timeout     time.Duration
	RequiredEnv []string
	Enabled     bool
}

// GatewayResult is the normalized winning response of a dispatch.
type GatewayResult struct {
	Provider      string
	TransactionID string
	PixCode       string
	QRImage       string
	// Raw is the decoded gateway body, kept for debug logging.
	Raw           map[string]any
}

// AttemptOutcome classifies why an attempt did not produce a charge.
type AttemptOutcome string

const (
	AttemptSkipped     AttemptOutcome = "skipped"
	AttemptUnreachable AttemptOutcome = "unreachable"
	AttemptTimeout     AttemptOutcome = "timeout"
	AttemptHTTPError   AttemptOutcome = "http_error"
	AttemptInvalidBody AttemptOutcome = "invalid_body"
	AttemptRejected    AttemptOutcome = "rejected"
	AttemptSucceeded   AttemptOutcome = "succeeded"
)

// AttemptDiagnostic records one gateway attempt for troubleshooting.
type AttemptDiagnostic struct {
	Gateway    string         `json:"gateway"`
	Outcome    AttemptOutcome `json:"outcome"`
	StatusCode int            `json:"status_code,omitempty"`
	Detail     string         `json:"detail,omitempty"`
}

func (d AttemptDiagnostic) String() string {
	if d.StatusCode > 0 {
		return fmt.Sprintf("%s: %s status=%d %s", d.Gateway, d.Outcome, d.StatusCode, d.Detail)
	}
	if d.Detail != "" {
		return fmt.Sprintf("%s: %s %s", d.Gateway, d.Outcome, d.Detail)
	}
	return fmt.Sprintf("%s: %s", d.Gateway, d.Outcome)
}

// DiagnosticLines renders attempts as the flat string list exposed in responses.
func DiagnosticLines(attempts []AttemptDiagnostic) []string {
	if len(attempts) == 0 {
		return nil
	}
	out := make([]string, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, a.String())
	}
	return out
}

// Attempted reports whether at least one strategy actually issued a call.
func Attempted(attempts []AttemptDiagnostic) bool {
	for _, a := range attempts {
		if a.Outcome != AttemptSkipped {
			return true
		}
	}
	return false
}
