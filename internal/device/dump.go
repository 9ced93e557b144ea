package device

import (
	"context"
	"fmt"
	"io"
)

// Dump performs one discovery pass against src and writes a human-readable
// description of every module and function to w. Used by the debug CLI path.
func Dump(ctx context.Context, w io.Writer, src Source) error {
	modules, err := src.EnumerateModules(ctx)
	if err != nil {
		return fmt.Errorf("device: dump: %w", err)
	}

	fmt.Fprintf(w, "%d module(s) attached\n", len(modules))
	for _, m := range modules {
		current, err := src.ReadCurrent(ctx, m)
		if err != nil {
			return fmt.Errorf("device: dump: %w", err)
		}
		luminosity, err := src.ReadLuminosity(ctx, m)
		if err != nil {
			return fmt.Errorf("device: dump: %w", err)
		}

		fmt.Fprintf(w, "module %s (%s): %d function(s)\n", m.Serial, m.Name, m.FunctionCount)
		fmt.Fprintf(w, "  current    %g mA\n", current)
		fmt.Fprintf(w, "  luminosity %g %%\n", luminosity)

		for i := 0; i < m.FunctionCount; i++ {
			if i == DataloggerIndex {
				fmt.Fprintf(w, "  function %d: datalogger (not exported)\n", i)
				continue
			}
			ftype, err := src.FunctionType(ctx, m, i)
			if err != nil {
				return fmt.Errorf("device: dump: %w", err)
			}
			value, err := src.FunctionValue(ctx, m, i)
			if err != nil {
				return fmt.Errorf("device: dump: %w", err)
			}
			fmt.Fprintf(w, "  function %d: %s = %g\n", i, ftype, value)
		}
	}
	return nil
}
