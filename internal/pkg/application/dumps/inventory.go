package dumps

import (
	"golang.org/x/exp/slices"
)

// File is a dump file found on disk
type File struct {
	Timestamp string
	ByteSize  int64
	Filename  string
}

// Inventory maps dump dates to the files found for each "<format><compression>"
// key. Dates are kept in the order they were first added.
type Inventory struct {
	dates []string
	files map[string]map[string]File
}

func NewInventory() *Inventory {
	return &Inventory{
		dates: []string{},
		files: map[string]map[string]File{},
	}
}

// Add records f for date and key. The first file recorded for a key wins.
func (inv *Inventory) Add(date, key string, f File) bool {
	byKey, ok := inv.files[date]
	if !ok {
		byKey = map[string]File{}
		inv.files[date] = byKey
		inv.dates = append(inv.dates, date)
	}

	if _, exists := byKey[key]; exists {
		return false
	}

	byKey[key] = f
	return true
}

func (inv *Inventory) Dates() []string {
	if inv == nil {
		return []string{}
	}
	return slices.Clone(inv.dates)
}

func (inv *Inventory) Lookup(date, key string) (File, bool) {
	if inv == nil {
		return File{}, false
	}
	f, ok := inv.files[date][key]
	return f, ok
}

// Len returns the number of dump dates in the inventory
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.dates)
}
