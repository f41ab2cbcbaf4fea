package pricing

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/ini.v1"
)

const (
	keyMonochrome     = "monochrome_price"
	keyColored        = "colored_price"
	keyImageSurcharge = "image_surcharge"
)

// Rates is the per-page rate triple for one category
type Rates struct {
	Monochrome     decimal.Decimal `json:"monochrome"`
	Colored        decimal.Decimal `json:"colored"`
	ImageSurcharge decimal.Decimal `json:"image_surcharge"`
}

// Base returns the per-page rate for a colored or monochrome job
func (r Rates) Base(colored bool) decimal.Decimal {
	if colored {
		return r.Colored
	}
	return r.Monochrome
}

// fallbackRates answer lookups for categories the table has no entry for
var fallbackRates = Rates{
	Monochrome:     decimal.RequireFromString("0.10"),
	Colored:        decimal.RequireFromString("0.25"),
	ImageSurcharge: decimal.RequireFromString("0.05"),
}

// DefaultRates returns the built-in rates for every known category
func DefaultRates() map[Category]Rates {
	return map[Category]Rates{
		Print: {
			Monochrome:     decimal.RequireFromString("5.00"),
			Colored:        decimal.RequireFromString("8.00"),
			ImageSurcharge: decimal.RequireFromString("2.00"),
		},
		Photocopy: {
			Monochrome:     decimal.RequireFromString("3.00"),
			Colored:        decimal.RequireFromString("5.00"),
			ImageSurcharge: decimal.RequireFromString("2.00"),
		},
		Scan: {
			Monochrome:     decimal.RequireFromString("2.00"),
			Colored:        decimal.RequireFromString("4.00"),
			ImageSurcharge: decimal.RequireFromString("2.00"),
		},
	}
}

// Table holds the rates for every category and persists them to an INI file.
// Lookups never fail: unknown categories are answered with fallback rates.
type Table struct {
	path  string
	rates map[Category]Rates
}

// NewTable creates a Table seeded with the default rates. Nothing is read until Load.
func NewTable(path string) *Table {
	return &Table{
		path:  path,
		rates: DefaultRates(),
	}
}

// Path returns the config file the table loads from and saves to
func (t *Table) Path() string {
	return t.path
}

// Rates returns the rate triple for a category
func (t *Table) Rates(c Category) Rates {
	if r, ok := t.rates[c]; ok {
		return r
	}
	return fallbackRates
}

// All returns a copy of the rates of every known category
func (t *Table) All() map[Category]Rates {
	all := make(map[Category]Rates, len(t.rates))
	for _, c := range Categories() {
		all[c] = t.Rates(c)
	}
	return all
}

// Rate returns the colored or monochrome per-page rate
func (t *Table) Rate(c Category, colored bool) decimal.Decimal {
	return t.Rates(c).Base(colored)
}

// ImageSurcharge returns the per-page surcharge for pages with images
func (t *Table) ImageSurcharge(c Category) decimal.Decimal {
	return t.Rates(c).ImageSurcharge
}

// SetRate sets the colored or monochrome rate, creating the category entry if needed
func (t *Table) SetRate(c Category, colored bool, value decimal.Decimal) {
	r := t.Rates(c)
	if colored {
		r.Colored = value
	} else {
		r.Monochrome = value
	}
	t.rates[c] = r
}

// SetImageSurcharge sets the image surcharge, creating the category entry if needed
func (t *Table) SetImageSurcharge(c Category, value decimal.Decimal) {
	r := t.Rates(c)
	r.ImageSurcharge = value
	t.rates[c] = r
}

// Reset restores the built-in defaults in memory without saving
func (t *Table) Reset() {
	for c, r := range DefaultRates() {
		t.rates[c] = r
	}
}

// Summary renders one line of rates per category
func (t *Table) Summary() string {
	lines := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		r := t.Rates(c)
		lines = append(lines, fmt.Sprintf("%s: Mono %s, Color %s, Images +%s",
			c, FormatCurrency(r.Monochrome), FormatCurrency(r.Colored), FormatCurrency(r.ImageSurcharge)))
	}
	return strings.Join(lines, "\n")
}

// Load overlays the config file onto the current rates.
// A missing file, section or key keeps the current value. A value that is not
// a decimal number falls back to the built-in default for that field.
func (t *Table) Load() error {
	f, err := ini.LooseLoad(t.path)
	if err != nil {
		return fmt.Errorf("loading price config: %w", err)
	}

	for _, c := range Categories() {
		sec, err := f.GetSection(c.Section())
		if err != nil {
			continue
		}
		r, def := t.Rates(c), defaultRatesFor(c)
		r.Monochrome = readRate(sec, keyMonochrome, r.Monochrome, def.Monochrome)
		r.Colored = readRate(sec, keyColored, r.Colored, def.Colored)
		r.ImageSurcharge = readRate(sec, keyImageSurcharge, r.ImageSurcharge, def.ImageSurcharge)
		t.rates[c] = r
	}
	return nil
}

func defaultRatesFor(c Category) Rates {
	if !c.Valid() {
		return fallbackRates
	}
	return DefaultRates()[c]
}

func readRate(sec *ini.Section, key string, current, def decimal.Decimal) decimal.Decimal {
	if !sec.HasKey(key) {
		return current
	}
	raw := strings.TrimSpace(sec.Key(key).String())
	value, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("Malformed price value, using default rate",
			"section", sec.Name(),
			"key", key,
			"value", raw,
			"default", def.StringFixed(2),
			"error", err,
		)
		return def
	}
	return value
}

// Save writes the whole table to the config file, replacing its contents
func (t *Table) Save() error {
	f := ini.Empty()
	for _, c := range t.categories() {
		sec, err := f.NewSection(c.Section())
		if err != nil {
			return fmt.Errorf("saving price config: %w", err)
		}
		r := t.rates[c]
		for _, kv := range []struct {
			key   string
			value decimal.Decimal
		}{
			{keyMonochrome, r.Monochrome},
			{keyColored, r.Colored},
			{keyImageSurcharge, r.ImageSurcharge},
		} {
			if _, err := sec.NewKey(kv.key, formatRate(kv.value)); err != nil {
				return fmt.Errorf("saving price config: %w", err)
			}
		}
	}

	if err := f.SaveTo(t.path); err != nil {
		return fmt.Errorf("saving price config: %w", err)
	}
	return nil
}

// categories returns the categories present in the table, known ones first
func (t *Table) categories() []Category {
	cats := make([]Category, 0, len(t.rates))
	for c := range t.rates {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// formatRate keeps at least two decimals without dropping precision
func formatRate(d decimal.Decimal) string {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return s
	}
	return d.StringFixed(2)
}

// Backup copies the config file next to itself with a timestamped name.
// It returns an empty path when there is no config file to copy.
func (t *Table) Backup(now time.Time) (string, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading price config: %w", err)
	}

	ext := filepath.Ext(t.path)
	base := strings.TrimSuffix(filepath.Base(t.path), ext)
	name := fmt.Sprintf("%s_backup_%s%s", base, now.Format("20060102_150405"), ext)
	path := filepath.Join(filepath.Dir(t.path), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing price config backup: %w", err)
	}
	return path, nil
}
