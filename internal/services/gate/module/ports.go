package module

import dom "refgate/internal/services/gate/domain"

// Ports holds the ports exposed by the gate module
type Ports struct {
	Gate dom.EvaluatePort
}
