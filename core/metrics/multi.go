package metrics

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the summary to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(s RunSummary) error {
	for _, sink := range m.Sinks {
		if err := sink.RecordRun(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordTick forwards the sample to sinks that record ticks.
func (m *MultiSink) RecordTick(s TickSample) error {
	for _, sink := range m.Sinks {
		if rec, ok := sink.(TickRecorder); ok {
			if err := rec.RecordTick(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every sink that buffers.
func (m *MultiSink) Flush() error {
	for _, sink := range m.Sinks {
		if f, ok := sink.(Flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
