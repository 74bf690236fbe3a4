package kafka

// SASL mechanisms understood by NewProducer.
const (
	MechanismPlain       = "PLAIN"
	MechanismScramSHA256 = "SCRAM-SHA-256"
	MechanismScramSHA512 = "SCRAM-SHA-512"
)

// Config describes the brokers loan request events are written to.
type Config struct {
	Brokers []string
	TLS     bool

	// SASLEnabled turns on authentication with SASLMechanism, which
	// defaults to PLAIN when empty.
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}
