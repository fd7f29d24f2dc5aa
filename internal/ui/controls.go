package ui

import (
	"image"
	"math"
	"strconv"

	"mad-sand/internal/core"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

// nextValue returns the value one step from current in direction dir,
// clamped to the control's bounds, and whether it differs from current.
func nextValue(ctrl core.ParameterControl, current float64, dir int) (float64, bool) {
	if dir == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
		if ctrl.Type == core.ParamTypeInt {
			step = 1
		}
	}
	target := current + float64(dir)*step
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	return target, math.Abs(target-current) > 1e-9
}

// formatValue renders a parameter value with a precision matched to the
// control's step.
func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case ctrl.Step <= 0:
		precision = 2
	case ctrl.Step < 0.001:
		precision = 4
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// parseValue reads a snapshot value for a control.
func parseValue(ctrl core.ParameterControl, raw string) (float64, bool) {
	if ctrl.Type == core.ParamTypeInt {
		n, err := strconv.Atoi(raw)
		return float64(n), err == nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	return f, err == nil
}

// DensityWeights maps palette-indexed cells to their material density in
// [0, 1]. Empty cells weigh zero.
func DensityWeights(cells []uint8, dst []float64) []float64 {
	if cap(dst) < len(cells) {
		dst = make([]float64, len(cells))
	}
	dst = dst[:len(cells)]
	for i, c := range cells {
		m := material.Material(c / sand.Shades)
		if m == material.Empty || !m.Valid() {
			dst[i] = 0
			continue
		}
		dst[i] = float64(m.Density()) / 255
	}
	return dst
}

// BrushOutline returns the grid cells on the rim of a brush of the given
// radius centred on (cx, cy), matching the disk the world paints.
func BrushOutline(cx, cy, radius int) []image.Point {
	if radius <= 0 {
		return []image.Point{{X: cx, Y: cy}}
	}
	inside := func(dx, dy int) bool { return dx*dx+dy*dy <= radius*radius }
	var pts []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if !inside(dx, dy) {
				continue
			}
			if inside(dx-1, dy) && inside(dx+1, dy) && inside(dx, dy-1) && inside(dx, dy+1) {
				continue
			}
			pts = append(pts, image.Point{X: cx + dx, Y: cy + dy})
		}
	}
	return pts
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}
