package domain

import "fmt"

// Target identifies one container whose logs are tailed. It is immutable
// once a stream worker has been spawned for it.
type Target struct {
	// SourceID uniquely identifies the workload instance, in the form
	// "namespace/pod".
	SourceID string

	// Container is the container name within the workload.
	Container string

	// Previous requests logs from the prior container instance (after a
	// crash or restart).
	Previous bool

	// TailLines limits how far back the stream starts. Nil means
	// unbounded (the full retained log).
	TailLines *int64
}

// String returns the target in "namespace/pod/container" form.
func (t Target) String() string {
	return t.SourceID + "/" + t.Container
}

// LogMessage is a single log line received from a target. It is a value
// type: created once by a stream worker and never mutated afterwards.
type LogMessage struct {
	SourceID  string
	Container string
	Text      string
}

// Prefix returns the source tag rendered ahead of the log text.
func (m LogMessage) Prefix() string {
	return fmt.Sprintf("[%s/%s]", m.SourceID, m.Container)
}

// String renders the message with its source prefix.
func (m LogMessage) String() string {
	return m.Prefix() + " " + m.Text
}
