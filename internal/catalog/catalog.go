// Package catalog описывает структуру дашборда: отрасли, группы индикаторов,
// типы графиков, распределение резервистов и направления оценки стартапов.
// Каталог читается один раз при старте и дальше не меняется.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/indicator-dashboard/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

// ReservistShare - доля резервистов в отрасли
type ReservistShare struct {
	Industry string  `json:"industry"`
	Percent  float64 `json:"percent"`
}

type Catalog struct {
	Industries       []domain.Industry          `yaml:"industries"`
	SharedIndicators []string                   `yaml:"shared_indicators"`
	PlotTypes        map[string]domain.PlotType `yaml:"plot_types"`
	Reservists       map[string]float64         `yaml:"reservists"`
	Pillars          []string                   `yaml:"pillars"`

	byName map[string]int
}

// Default возвращает встроенный каталог
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load читает каталог из файла; пустой путь - встроенный каталог
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает и проверяет YAML каталога
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c.byName = make(map[string]int, len(c.Industries))
	for i, ind := range c.Industries {
		if ind.Name == "" {
			return nil, fmt.Errorf("catalog: industry #%d has no name", i)
		}
		if _, dup := c.byName[ind.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate industry %q", ind.Name)
		}
		c.byName[ind.Name] = i
	}
	for name, pt := range c.PlotTypes {
		if !pt.Valid() {
			return nil, fmt.Errorf("catalog: indicator %q has unknown plot type %q", name, pt)
		}
	}

	return &c, nil
}

// PlotType возвращает тип графика индикатора, по умолчанию line
func (c *Catalog) PlotType(indicator string) domain.PlotType {
	if pt, ok := c.PlotTypes[indicator]; ok {
		return pt
	}
	return domain.PlotLine
}

func (c *Catalog) Industry(name string) (domain.Industry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Industry{}, false
	}
	return c.Industries[i], true
}

func (c *Catalog) IndustryNames() []string {
	names := make([]string, 0, len(c.Industries))
	for _, ind := range c.Industries {
		names = append(names, ind.Name)
	}
	return names
}

// DefaultIndicators - индикаторы отрасли по группам (группы по алфавиту)
func (c *Catalog) DefaultIndicators(industry string) []string {
	ind, ok := c.Industry(industry)
	if !ok {
		return nil
	}

	groups := make([]string, 0, len(ind.Groups))
	for g := range ind.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var out []string
	for _, g := range groups {
		out = append(out, ind.Groups[g]...)
	}
	return out
}

// AllIndicators - все индикаторы каталога без повторов в порядке появления
func (c *Catalog) AllIndicators() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(names []string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	for _, ind := range c.Industries {
		add(c.DefaultIndicators(ind.Name))
	}
	add(c.SharedIndicators)
	return out
}

// ReservistDistribution - доли резервистов по отраслям, по алфавиту
func (c *Catalog) ReservistDistribution() []ReservistShare {
	out := make([]ReservistShare, 0, len(c.Reservists))
	for industry, pct := range c.Reservists {
		out = append(out, ReservistShare{Industry: industry, Percent: pct})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Industry < out[j].Industry })
	return out
}
