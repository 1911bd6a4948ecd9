package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/infra/logger"
	"github.com/kilianp07/fleetsim/internal/eventbus"
)

// StartFrameCollector subscribes to the frame bus and records a tick sample
// for every frame on sinks that support it. The returned channel is closed
// once the bus closes or ctx is canceled. A failed tick write is logged and
// the collector keeps going; log defaults to a zerolog component logger.
func StartFrameCollector(ctx context.Context, bus *eventbus.TypedBus[report.Frame], sink coremetrics.Sink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	rec, ok := sink.(coremetrics.TickRecorder)
	if bus == nil || !ok {
		close(done)
		return done
	}
	if log == nil {
		log = logger.New("frame-collector")
	}
	sub := bus.SubscribeSize(64)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-sub:
				if !ok {
					return
				}
				err := rec.RecordTick(coremetrics.TickSample{
					RunID:     f.RunID,
					Tick:      f.Tick,
					Loaded:    f.Loaded(),
					Docked:    f.Docked(),
					Completed: f.Completed(),
					Time:      f.Time,
				})
				if err != nil {
					log.Warnf("tick %d of run %s not recorded: %v", f.Tick, f.RunID, err)
				}
			}
		}
	}()
	return done
}
