package types

// Commitment is the confirmation level requested from the cluster.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// Reached reports whether status satisfies the wanted commitment level.
func (c Commitment) Reached(status Commitment) bool {
	return commitmentRank(status) >= commitmentRank(c)
}

func commitmentRank(c Commitment) int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	default:
		return 0
	}
}

// String returns the string form of the commitment.
func (c Commitment) String() string { return string(c) }

// LamportsPerSOL converts between lamports and SOL for display.
const LamportsPerSOL = 1_000_000_000

// Lamports is an amount of the native token in its smallest unit.
type Lamports uint64

// SOL returns the amount in whole SOL.
func (l Lamports) SOL() float64 { return float64(l) / LamportsPerSOL }
