package mqtt

import (
	coremqtt "github.com/chloebrgr/docksched/core/mqtt"
	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/infra/logger"
)

// Scheduler decides on mission requests. It is implemented by the
// scheduling engine.
type Scheduler interface {
	Schedule(req model.MissionRequest) (model.Decision, error)
}

// Ingestor feeds mission requests from a source into the scheduler and
// publishes the resulting decisions.
type Ingestor struct {
	source    coremqtt.RequestSource
	publisher coremqtt.DecisionPublisher
	scheduler Scheduler
	log       logger.Logger
}

// NewIngestor wires a request source to the scheduler. publisher may be nil
// when decisions should not be echoed back to the broker.
func NewIngestor(source coremqtt.RequestSource, publisher coremqtt.DecisionPublisher, scheduler Scheduler) *Ingestor {
	return &Ingestor{
		source:    source,
		publisher: publisher,
		scheduler: scheduler,
		log:       logger.New("mqtt_ingestor"),
	}
}

// Start subscribes to the request source. Requests are handled on the
// client's delivery goroutine.
func (i *Ingestor) Start() error {
	return i.source.Subscribe(i.handle)
}

func (i *Ingestor) handle(req model.MissionRequest) {
	decision, err := i.scheduler.Schedule(req)
	if err != nil {
		i.log.Errorf("mission %s: %v", req.MissionID, err)
	}
	if i.publisher == nil {
		return
	}
	if err := i.publisher.PublishDecision(decision); err != nil {
		i.log.Errorf("publish decision for mission %s: %v", req.MissionID, err)
	}
}

// Stop disconnects from the request source.
func (i *Ingestor) Stop() {
	i.source.Disconnect()
}
