package mqtt

import "github.com/chloebrgr/docksched/core/model"

// RequestHandler consumes mission requests received from the wire.
type RequestHandler func(model.MissionRequest)

// RequestSource delivers mission requests from an external transport.
type RequestSource interface {
	// Subscribe registers the handler invoked for every decoded request.
	Subscribe(handler RequestHandler) error

	// Disconnect gracefully closes the underlying connection.
	Disconnect()
}

// DecisionPublisher pushes scheduling decisions back to the transport.
type DecisionPublisher interface {
	PublishDecision(decision model.Decision) error
}
