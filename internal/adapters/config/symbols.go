package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StockEntry describes one tracked stock in the symbols file
type StockEntry struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
	Sector string `yaml:"sector"`
}

// IndexEntry describes one tracked market index in the symbols file
type IndexEntry struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Symbols is the static universe of tracked stocks and indices
type Symbols struct {
	Stocks  []StockEntry `yaml:"stocks"`
	Indices []IndexEntry `yaml:"indices"`
}

// LoadSymbols reads the tracked symbol universe from a YAML file
func LoadSymbols(path string) (*Symbols, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	var symbols Symbols
	if err := yaml.Unmarshal(data, &symbols); err != nil {
		return nil, fmt.Errorf("failed to parse symbols file: %w", err)
	}

	if len(symbols.Stocks) == 0 && len(symbols.Indices) == 0 {
		return nil, fmt.Errorf("symbols file %s lists no stocks or indices", path)
	}

	for i, s := range symbols.Stocks {
		if s.Symbol == "" {
			return nil, fmt.Errorf("stock entry %d has empty symbol", i)
		}
	}
	for i, idx := range symbols.Indices {
		if idx.Symbol == "" {
			return nil, fmt.Errorf("index entry %d has empty symbol", i)
		}
	}

	return &symbols, nil
}
