package collector

import (
	"github.com/probegrid/sensord/internal/device"
	"github.com/probegrid/sensord/internal/store"
)

// Metric names published for sensor values.
const (
	MetricUSBCurrent  = "usb_current"
	MetricLuminosity  = "luminosity"
	MetricTemperature = "temperature"
	MetricPressure    = "pressure"
	MetricHumidity    = "humidity"
	MetricLight       = "light"
)

// FunctionReading is one module function observed during a cycle.
type FunctionReading struct {
	Index int
	Type  device.FunctionType
	Value float64
}

// ModuleReading is everything read from a single module during a cycle.
type ModuleReading struct {
	Name       string
	Current    float64
	Luminosity float64
	Functions  []FunctionReading
}

// Update is one pending gauge write produced by the mapper.
type Update struct {
	Name   string
	Labels store.Labels
	Value  float64
}

// functionMetric maps a supported function type to its metric name, the
// hardware_id suffix, and the unit label.
var functionMetric = map[device.FunctionType]struct {
	name   string
	suffix string
	unit   string
}{
	device.TypeTemperature: {MetricTemperature, "temperature", "Celsius"},
	device.TypePressure:    {MetricPressure, "pressure", "mbar"},
	device.TypeHumidity:    {MetricHumidity, "humidity", "% RH"},
	device.TypeLightSensor: {MetricLight, "light", "lux"},
}

// mapModule turns one module reading into the gauge updates it implies.
// It always emits the USB current and beacon luminosity series, then one
// series per supported function. The reserved datalogger index and
// unsupported function types emit nothing. The function is pure: the caller
// applies the updates to the store.
//
// Updates are emitted in function order, so two functions of the same type
// on one module collapse to the last one once applied (they share a
// hardware_id).
func mapModule(r ModuleReading) []Update {
	updates := []Update{
		{
			Name:   MetricUSBCurrent,
			Labels: store.Labels{"hardware_id": r.Name + ".current", "unit": "mA"},
			Value:  r.Current,
		},
		{
			Name:   MetricLuminosity,
			Labels: store.Labels{"hardware_id": r.Name + ".luminosity", "unit": "%"},
			Value:  r.Luminosity,
		},
	}

	for _, f := range r.Functions {
		if f.Index == device.DataloggerIndex {
			continue
		}
		m, ok := functionMetric[f.Type]
		if !ok {
			continue
		}
		updates = append(updates, Update{
			Name:   m.name,
			Labels: store.Labels{"hardware_id": r.Name + "." + m.suffix, "unit": m.unit},
			Value:  f.Value,
		})
	}
	return updates
}
