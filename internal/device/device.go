// Package device defines the abstract sensor device source consumed by the
// collector: module enumeration and per-function value reads. Concrete
// transports (the local hub client, test doubles) implement Source.
package device

import "context"

// FunctionType identifies the kind of sensing capability a module function
// provides. Values match the type tags reported by the device hub.
type FunctionType string

// Supported function types. Any other tag is ignored by the collector.
const (
	TypeTemperature FunctionType = "Temperature"
	TypePressure    FunctionType = "Pressure"
	TypeHumidity    FunctionType = "Humidity"
	TypeLightSensor FunctionType = "LightSensor"
)

// DataloggerIndex is the function index reserved for the module's built-in
// datalogger. It is never read or exported.
const DataloggerIndex = 0

// Module is a sensor unit discovered during an enumeration pass.
type Module struct {
	// Serial is the stable unique identifier of the module.
	Serial string

	// Name is the friendly display name. It may change between passes.
	Name string

	// FunctionCount is the number of addressable functions, including the
	// reserved datalogger at index 0.
	FunctionCount int
}

// Source provides access to currently attached sensor modules. Enumeration
// is computed fresh on every call; modules that have been detached simply
// stop appearing. All methods may fail with *AccessError.
type Source interface {
	// EnumerateModules returns all currently reachable modules.
	EnumerateModules(ctx context.Context) ([]Module, error)

	// ReadCurrent returns the module's USB current draw in mA.
	ReadCurrent(ctx context.Context, m Module) (float64, error)

	// ReadLuminosity returns the module's beacon luminosity in percent.
	ReadLuminosity(ctx context.Context, m Module) (float64, error)

	// FunctionType returns the type tag of the function at the given index.
	FunctionType(ctx context.Context, m Module, index int) (FunctionType, error)

	// FunctionValue returns the current reading of the function at the
	// given index.
	FunctionValue(ctx context.Context, m Module, index int) (float64, error)
}
