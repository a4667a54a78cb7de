package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when the document's top level is not a map name → entries mapping.
var ErrNotMapping = errors.New("top level of document is not a mapping")

// Format is the encoding of a source document
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the document format from the file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadReport summarises a ReadDocument call.
type ReadReport struct {
	PerMap     map[string]int // surviving lineups per map, after dedup
	Total      int
	Duplicates int
	Rejections core.Tally
}

// Parser reads source documents into validated lineups.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// ReadDocument decodes a source document and parses every entry of every map.
// Rejected entries are logged and tallied, never fatal. The only error returned is for a
// document that cannot be decoded or whose top level is not a mapping.
func (p *Parser) ReadDocument(data []byte, format Format) (core.Collection, ReadReport, error) {
	report := ReadReport{
		PerMap:     map[string]int{},
		Rejections: core.Tally{},
	}

	groups, err := decode(data, format)
	if err != nil {
		return nil, report, err
	}

	collection := make(core.Collection, len(groups))
	for mapName, entries := range groups {
		lineups := p.readMap(mapName, entries, report.Rejections)
		unique := core.Dedup(lineups)
		report.Duplicates += len(lineups) - len(unique)

		collection[mapName] = unique
		report.PerMap[mapName] = len(unique)
		report.Total += len(unique)
	}

	for _, mapName := range collection.Maps() {
		p.logger.Info().Str("map", mapName).Int("nades", report.PerMap[mapName]).Msg("Read map")
	}
	p.logger.Info().
		Int("total", report.Total).
		Int("duplicates", report.Duplicates).
		Int("rejected", report.Rejections.Total()).
		Msg("Nades read")

	return collection, report, nil
}

func (p *Parser) readMap(mapName string, entries any, rejections core.Tally) []core.Lineup {
	list, ok := entries.([]any)
	if !ok {
		if entries != nil {
			p.logger.Warn().Str("map", mapName).Msgf("Entries are %T, not a list; map is empty", entries)
		}
		return []core.Lineup{}
	}

	lineups := make([]core.Lineup, 0, len(list))
	for i, entry := range list {
		lineup, err := ParseLineup(entry)
		if err != nil {
			rejections.Add(err)
			p.logger.Debug().Str("map", mapName).Int("index", i).Err(err).Msg("Dropped lineup")
			continue
		}
		lineups = append(lineups, lineup)
	}
	return lineups
}

// decode turns the raw document into its map name → entries groups.
func decode(data []byte, format Format) (map[string]any, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("error unmarshalling yaml document: %w", err)
		}
	case FormatJSON, FormatAuto, "":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("error unmarshalling json document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document format: %s", format)
	}

	switch top := doc.(type) {
	case map[string]any:
		return top, nil
	case map[any]any:
		groups := make(map[string]any, len(top))
		for k, v := range top {
			groups[fmt.Sprint(k)] = v
		}
		return groups, nil
	default:
		return nil, ErrNotMapping
	}
}
