// Package metrics exposes the client's prometheus instrumentation.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry holds every counter/gauge the session and client layers
// update. A single Registry is constructed at startup and threaded
// through to whichever components need it.
type Registry struct {
	PacketsSent          prometheus.Counter
	PacketsReceived      prometheus.Counter
	PacketsRetransmitted prometheus.Counter
	ChecksumFailures     prometheus.Counter
	FragmentsReassembled prometheus.Counter

	ConnectionState  prometheus.Gauge
	RetryAttempts    prometheus.Gauge
}

// NewRegistry constructs and registers every metric against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		PacketsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holtburger",
			Subsystem: "session",
			Name:      "packets_sent_total",
			Help:      "Datagrams sent to the peer.",
		}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holtburger",
			Subsystem: "session",
			Name:      "packets_received_total",
			Help:      "Datagrams received from the peer.",
		}),
		PacketsRetransmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holtburger",
			Subsystem: "session",
			Name:      "packets_retransmitted_total",
			Help:      "Packets resent in response to REQUEST_RETRANSMIT.",
		}),
		ChecksumFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holtburger",
			Subsystem: "session",
			Name:      "checksum_failures_total",
			Help:      "Inbound packets discarded for a checksum mismatch.",
		}),
		FragmentsReassembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holtburger",
			Subsystem: "session",
			Name:      "fragments_reassembled_total",
			Help:      "Fragmented messages successfully reassembled.",
		}),
		ConnectionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "holtburger",
			Subsystem: "client",
			Name:      "connection_state",
			Help:      "Current client state machine value (see internal/client.State).",
		}),
		RetryAttempts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "holtburger",
			Subsystem: "client",
			Name:      "retry_attempts",
			Help:      "Enter-world retry attempts made, as of the most recent retry firing.",
		}),
	}

	reg.MustRegister(
		r.PacketsSent,
		r.PacketsReceived,
		r.PacketsRetransmitted,
		r.ChecksumFailures,
		r.FragmentsReassembled,
		r.ConnectionState,
		r.RetryAttempts,
	)
	return r
}
