// Package loader implements the initial program load (IPL): reading a
// load-image file and depositing it into a Machine's memory before
// execution begins (spec.md §4.J "IPL").
package loader

import (
	"fmt"
	"os"

	"github.com/cs6461/ttm/loadimage"
	"github.com/cs6461/ttm/vm"
)

// Warning is returned (alongside a nil error) when the load image
// contained no records — the IPL treats that as a degenerate but valid
// deposit, not a failure.
type Warning struct {
	Path string
}

func (w *Warning) Error() string {
	return fmt.Sprintf("load image %s contained no records", w.Path)
}

// Load reads the load-image file at path and deposits every record
// directly into m's memory, bypassing the cache exactly as the
// physical load switch does. Reset is performed first (spec.md §4.I).
// It sets PC/MAR to the first record's address. A malformed line fails
// the whole load atomically: memory is left untouched beyond the
// reset. An empty image is not an error; Load returns a *Warning
// describing it, and PC/MAR remain at 0.
func Load(m *vm.Machine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening load image %s: %w", path, err)
	}
	defer f.Close()

	m.Reset()

	records, err := loadimage.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing load image %s: %w", path, err)
	}

	if len(records) == 0 {
		return &Warning{Path: path}
	}

	for _, rec := range records {
		if err := m.Memory.DirectWrite(int(rec.Addr), rec.Word); err != nil {
			return fmt.Errorf("depositing %s record at %04o: %w", path, rec.Addr, err)
		}
	}

	first := records[0].Addr
	m.Registers.SetPC(first)
	m.Registers.SetMAR(first)
	return nil
}
