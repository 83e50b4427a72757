package osmnet

// Source provides decoded records of an extract. Every call is a full independent pass over the data
// and records are always produced in the same order
type Source interface {
	ScanAreas(fn func(area *Area) error) error
	ScanWays(fn func(way *RawWay) error) error
}

// MemorySource is Source over records which are already in memory
type MemorySource struct {
	Ways  []*RawWay
	Areas []*Area
}

// ScanAreas calls fn for every area. Stops on first error
func (src *MemorySource) ScanAreas(fn func(area *Area) error) error {
	for _, area := range src.Areas {
		if err := fn(area); err != nil {
			return err
		}
	}
	return nil
}

// ScanWays calls fn for every way. Stops on first error
func (src *MemorySource) ScanWays(fn func(way *RawWay) error) error {
	for _, way := range src.Ways {
		if err := fn(way); err != nil {
			return err
		}
	}
	return nil
}
