package mqtt

import (
	"context"
	"encoding/json"

	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/monitoring"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/internal/eventbus"
)

// PublishFrame sends f as JSON to <prefix>/<run>/frame.
func (p *PahoClient) PublishFrame(f report.Frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if err := p.Publish(p.Topic(f.RunID, "frame"), payload, false); err != nil {
		monitoring.CaptureException(err, map[string]string{"run_id": f.RunID, "module": "mqtt"})
		return err
	}
	return nil
}

// RecordRun publishes the run summary, retained, to <prefix>/<run>/summary.
// It lets the client sit in a metrics.MultiSink.
func (p *PahoClient) RecordRun(s metrics.RunSummary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := p.Publish(p.Topic(s.RunID, "summary"), payload, true); err != nil {
		monitoring.CaptureException(err, map[string]string{"run_id": s.RunID, "module": "mqtt"})
		return err
	}
	return nil
}

// Start forwards every Nth frame from the bus to the broker. The last frame
// of a run is always forwarded when the bus closes. The returned channel is
// closed once the bus closes or ctx is canceled.
func (p *PahoClient) Start(ctx context.Context, bus *eventbus.TypedBus[report.Frame]) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil {
		close(done)
		return done
	}
	sub := bus.SubscribeSize(64)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		var (
			last    report.Frame
			pending bool
		)
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-sub:
				if !ok {
					if pending {
						_ = p.PublishFrame(last)
					}
					return
				}
				if f.Tick%p.every != 0 {
					last, pending = f, true
					continue
				}
				pending = false
				if err := p.PublishFrame(f); err != nil {
					p.logger.Warnf("frame %d not published: %v", f.Tick, err)
				}
			}
		}
	}()
	return done
}
