// Package collector implements the discovery-and-read cycle against the
// device source and the scheduler that drives it on a fixed period.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/probegrid/sensord/internal/device"
	"github.com/probegrid/sensord/internal/store"
)

// Bookkeeping series maintained by the collector itself.
const (
	// MetricReadPasses counts every attempted cycle, failed ones included.
	MetricReadPasses = "sensor_read_passes"

	// MetricDeviceErrors counts cycles aborted by a device access error.
	MetricDeviceErrors = "yapi_exceptions"

	// MetricReadTime is the wall-clock duration of the most recent
	// successful cycle, in seconds.
	MetricReadTime = "sensor_read_time"
)

// Outcome is the result of one collection cycle.
type Outcome struct {
	// Duration is the elapsed wall-clock time of the cycle. Only
	// meaningful when Err is nil.
	Duration time.Duration

	// Err is the device error that aborted the cycle, nil on success.
	Err error
}

// Collector executes one discovery-and-read cycle per call, writing the
// resulting series into the store. It is not safe for concurrent use; the
// scheduler serializes cycles.
type Collector struct {
	source device.Source
	store  *store.Store
	logger *slog.Logger

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New creates a Collector reading from source and writing to st.
func New(source device.Source, st *store.Store, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		source: source,
		store:  st,
		logger: logger.With("component", "collector"),
		now:    time.Now,
	}
}

// RunCycle performs one full cycle: enumerate modules, read every module's
// values and functions, map them to series, and apply the writes.
//
// The pass counter increments whether or not the cycle succeeds. On a device
// access error the cycle aborts before any sensor series is written, the
// error counter increments, and every previously published value (including
// the duration gauge) is left untouched. Modules absent from this cycle keep
// their prior series; nothing is ever expired.
func (c *Collector) RunCycle(ctx context.Context) (Outcome, error) {
	c.store.IncCounter(MetricReadPasses)

	start := c.now()
	updates, err := c.collect(ctx)
	if err != nil {
		c.store.IncCounter(MetricDeviceErrors)
		return Outcome{Err: err}, err
	}

	for _, u := range updates {
		c.store.SetGauge(u.Name, u.Labels, u.Value)
	}

	elapsed := c.now().Sub(start)
	c.store.SetGauge(MetricReadTime, store.Labels{"unit": "s"}, elapsed.Seconds())

	c.logger.Debug("cycle complete",
		"series", len(updates),
		"elapsed", elapsed,
	)
	return Outcome{Duration: elapsed}, nil
}

// collect runs the read side of a cycle and stages all updates. No store
// write happens here, so a failure part-way leaves nothing half-applied.
func (c *Collector) collect(ctx context.Context) ([]Update, error) {
	modules, err := c.source.EnumerateModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("collector: enumerate: %w", err)
	}

	var updates []Update
	for _, m := range modules {
		reading, err := c.readModule(ctx, m)
		if err != nil {
			return nil, err
		}
		updates = append(updates, mapModule(reading)...)
	}
	return updates, nil
}

// readModule reads a module's current draw, luminosity, and every function
// past the reserved datalogger index.
func (c *Collector) readModule(ctx context.Context, m device.Module) (ModuleReading, error) {
	reading := ModuleReading{Name: m.Name}

	var err error
	if reading.Current, err = c.source.ReadCurrent(ctx, m); err != nil {
		return ModuleReading{}, fmt.Errorf("collector: read current: %w", err)
	}
	if reading.Luminosity, err = c.source.ReadLuminosity(ctx, m); err != nil {
		return ModuleReading{}, fmt.Errorf("collector: read luminosity: %w", err)
	}

	for i := device.DataloggerIndex + 1; i < m.FunctionCount; i++ {
		ftype, err := c.source.FunctionType(ctx, m, i)
		if err != nil {
			return ModuleReading{}, fmt.Errorf("collector: function type: %w", err)
		}
		value, err := c.source.FunctionValue(ctx, m, i)
		if err != nil {
			return ModuleReading{}, fmt.Errorf("collector: function value: %w", err)
		}
		reading.Functions = append(reading.Functions, FunctionReading{
			Index: i,
			Type:  ftype,
			Value: value,
		})
	}
	return reading, nil
}
