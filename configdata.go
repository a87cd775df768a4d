// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2dChan/polygrid/core"
	"github.com/2dChan/polygrid/territory"
)

// ErrMalformedConfiguration is returned when a configuration string holds
// a field that is not a number.
var ErrMalformedConfiguration = errors.New("polygrid: malformed configuration data")

const (
	recordSeparator = ";"
	fieldSeparator  = ","
)

// cellRecord is the persisted state of one cell, in field order.
type cellRecord struct {
	visible   bool
	territory int
	color     core.Color
	texture   int
	tag       int
}

// ConfigurationData returns the persisted state of every cell. Cells are
// separated by ';' and each holds
//
//	visible,territory,a,r,g,b,texture,tag
//
// with visible as 1 or 0 and color components printed with 3 decimals.
func (g *Grid) ConfigurationData() string {
	var sb strings.Builder
	for i, c := range g.cells {
		if i > 0 {
			sb.WriteString(recordSeparator)
		}
		visible := 0
		if c.Visible {
			visible = 1
		}
		fmt.Fprintf(&sb, "%d,%d,%.3f,%.3f,%.3f,%.3f,%d,%d",
			visible, c.TerritoryIndex, c.Color.A, c.Color.R, c.Color.G, c.Color.B, c.TextureIndex, c.Tag)
	}
	return sb.String()
}

// SetConfigurationData restores cell state written by ConfigurationData on
// a grid of the same layout. Records beyond the cell count are ignored.
// Missing trailing fields leave the cell unset: no territory, no color, no
// texture and no tag. Color components are read only with a positive
// alpha. Nothing is applied when a field does not parse.
func (g *Grid) SetConfigurationData(data string) error {
	if data == "" {
		return nil
	}
	raw := strings.Split(data, recordSeparator)
	records := make([]cellRecord, 0, min(len(raw), len(g.cells)))
	for k, rec := range raw {
		if k >= len(g.cells) {
			break
		}
		r, err := parseCellRecord(rec)
		if err != nil {
			return fmt.Errorf("%w: cell %d: %w", ErrMalformedConfiguration, k, err)
		}
		records = append(records, r)
	}

	for k, r := range records {
		c := g.cells[k]
		c.Visible = r.visible
		c.Color = r.color
		c.TextureIndex = r.texture
		c.Tag = r.tag
		if r.territory < 0 || r.territory >= territory.MaxTerritories {
			c.TerritoryIndex = -1
		} else {
			g.CellSetTerritory(k, r.territory)
		}
	}
	g.dirty |= dirtyTerritories | dirtyTags
	return nil
}

func parseCellRecord(rec string) (cellRecord, error) {
	r := cellRecord{visible: true, territory: -1, texture: -1}
	fields := strings.Split(strings.TrimSpace(rec), fieldSeparator)
	if len(fields) == 1 && fields[0] == "" {
		return r, nil
	}
	field := func(i int) (string, bool) {
		if i >= len(fields) {
			return "", false
		}
		f := strings.TrimSpace(fields[i])
		return f, f != ""
	}

	if f, ok := field(0); ok {
		r.visible = f[0] != '0'
	}
	var err error
	if f, ok := field(1); ok {
		if r.territory, err = strconv.Atoi(f); err != nil {
			return r, err
		}
	}
	if len(fields) > 5 {
		var a float64
		if f, ok := field(2); ok {
			if a, err = strconv.ParseFloat(f, 64); err != nil {
				return r, err
			}
		}
		if a > 0 {
			rgb := make([]float64, 3)
			for j := range rgb {
				f, ok := field(3 + j)
				if !ok {
					continue
				}
				if rgb[j], err = strconv.ParseFloat(f, 64); err != nil {
					return r, err
				}
			}
			r.color = core.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: a}
		}
	}
	if f, ok := field(6); ok {
		if r.texture, err = strconv.Atoi(f); err != nil {
			return r, err
		}
	}
	if f, ok := field(7); ok {
		if r.tag, err = strconv.Atoi(f); err != nil {
			return r, err
		}
	}
	return r, nil
}
