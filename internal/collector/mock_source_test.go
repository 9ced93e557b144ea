package collector

import (
	"context"
	"sync"

	"github.com/probegrid/sensord/internal/device"
)

// mockFunction is one scripted function on a mock module.
type mockFunction struct {
	ftype device.FunctionType
	value float64
}

// mockModule is one scripted module served by mockSource.
type mockModule struct {
	serial     string
	name       string
	current    float64
	luminosity float64
	functions  []mockFunction // index 0 is the datalogger slot
}

func (m mockModule) module() device.Module {
	return device.Module{Serial: m.serial, Name: m.name, FunctionCount: len(m.functions)}
}

// mockSource is a scriptable device.Source. Failures can be injected per
// operation; failAfterReads aborts the Nth value read with an access error.
type mockSource struct {
	mu      sync.Mutex
	modules []mockModule

	enumerateErr error
	readErr      error

	// failAfterReads, when > 0, lets that many successful value reads
	// happen before every later read fails.
	failAfterReads int
	reads          int

	enumerateCalls int
}

func (s *mockSource) find(serial string) (mockModule, bool) {
	for _, m := range s.modules {
		if m.serial == serial {
			return m, true
		}
	}
	return mockModule{}, false
}

func (s *mockSource) EnumerateModules(_ context.Context) ([]device.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enumerateCalls++
	if s.enumerateErr != nil {
		return nil, &device.AccessError{Op: "enumerate", Err: s.enumerateErr}
	}
	out := make([]device.Module, 0, len(s.modules))
	for _, m := range s.modules {
		out = append(out, m.module())
	}
	return out, nil
}

// read gates every value read through the injected failure settings.
func (s *mockSource) read(op, serial string) error {
	if s.readErr != nil {
		return &device.AccessError{Op: op, Serial: serial, Err: s.readErr}
	}
	s.reads++
	if s.failAfterReads > 0 && s.reads > s.failAfterReads {
		return &device.AccessError{Op: op, Serial: serial, Err: device.ErrHubUnavailable}
	}
	return nil
}

func (s *mockSource) ReadCurrent(_ context.Context, m device.Module) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.read("read current", m.Serial); err != nil {
		return 0, err
	}
	mod, _ := s.find(m.Serial)
	return mod.current, nil
}

func (s *mockSource) ReadLuminosity(_ context.Context, m device.Module) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.read("read luminosity", m.Serial); err != nil {
		return 0, err
	}
	mod, _ := s.find(m.Serial)
	return mod.luminosity, nil
}

func (s *mockSource) FunctionType(_ context.Context, m device.Module, index int) (device.FunctionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.read("read function", m.Serial); err != nil {
		return "", err
	}
	mod, _ := s.find(m.Serial)
	return mod.functions[index].ftype, nil
}

func (s *mockSource) FunctionValue(_ context.Context, m device.Module, index int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.read("read function", m.Serial); err != nil {
		return 0, err
	}
	mod, _ := s.find(m.Serial)
	return mod.functions[index].value, nil
}

func (s *mockSource) enumerateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enumerateCalls
}

// sensorA is the canonical single-module fixture: a datalogger at index 0
// and one temperature function.
func sensorA() mockModule {
	return mockModule{
		serial:     "THRMCPL1-A0B1C",
		name:       "sensorA",
		current:    38,
		luminosity: 2,
		functions: []mockFunction{
			{ftype: "DataLogger"},
			{ftype: device.TypeTemperature, value: 21.5},
		},
	}
}
