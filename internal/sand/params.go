package sand

import (
	"math"

	"mad-sand/internal/core"
)

const (
	paramFlowDistance   = "flow_distance"
	paramFireRiseChance = "fire_rise_chance"
)

// Parameters reports the world's dimensions and tunables for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.engine.Params()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.grid.w),
				core.IntParam("h", "Height", w.grid.h),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.Int64Param("tick", "Tick", int64(w.engine.Tick())),
			},
		},
		{
			Name:    "Flow",
			Summary: "cells a fluid may slide sideways per tick",
			Params: []core.Parameter{
				core.IntParam(paramFlowDistance, "Flow distance", params.FlowDistance),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				core.FloatParam(paramFireRiseChance, "Fire rise chance", params.FireRiseChance),
			},
		},
	}}
}

// ParameterControls lists the parameters adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:    paramFlowDistance,
			Label:  "Flow",
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    1,
			Max:    maxFlowDistance,
			HasMin: true,
			HasMax: true,
		},
		{
			Key:    paramFireRiseChance,
			Label:  "Fire rise",
			Type:   core.ParamTypeFloat,
			Step:   0.05,
			Min:    0,
			Max:    1,
			HasMin: true,
			HasMax: true,
		},
	}
}

// SetIntParameter updates an integer tunable, reporting whether key is known.
func (w *World) SetIntParameter(key string, value int) bool {
	p := w.engine.Params()
	switch key {
	case paramFlowDistance:
		p.FlowDistance = value
	default:
		return false
	}
	w.engine.SetParams(p)
	return true
}

// SetFloatParameter updates a float tunable, reporting whether key is known.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	p := w.engine.Params()
	switch key {
	case paramFireRiseChance:
		p.FireRiseChance = value
	default:
		return false
	}
	w.engine.SetParams(p)
	return true
}
