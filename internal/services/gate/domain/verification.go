package domain

// VerificationVerdict is the outcome of checking a commit signature against
// a trust store
type VerificationVerdict uint8

const (
	// VerdictGood is a valid signature from a trusted key
	VerdictGood VerificationVerdict = iota

	// VerdictBad is an invalid signature
	VerdictBad

	// VerdictUnverifiable is a valid signature from an untrusted key
	VerdictUnverifiable

	// VerdictNoSignature means the commit carries no signature at all
	VerdictNoSignature
)

// VerificationFromCode maps git's single-character status code onto the
// verdict enum. ok=false marks a backend contract violation: the caller must
// escalate, never guess a verdict
func VerificationFromCode(code byte) (VerificationVerdict, bool) {
	switch code {
	case 'G':
		return VerdictGood, true
	case 'B':
		return VerdictBad, true
	case 'U':
		return VerdictUnverifiable, true
	case 'N':
		return VerdictNoSignature, true
	default:
		return 0, false
	}
}

func (v VerificationVerdict) String() string {
	switch v {
	case VerdictGood:
		return "good"
	case VerdictBad:
		return "bad"
	case VerdictUnverifiable:
		return "unverifiable"
	case VerdictNoSignature:
		return "no-signature"
	default:
		return "unknown"
	}
}
