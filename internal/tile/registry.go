package tile

// Def is the composed capability record for one tile type. A nil pointer
// (or false marker) means the capability is absent; callers must check
// presence rather than rely on zero values. Defs are built once at package
// init and never mutated afterwards.
type Def struct {
	Cost        *Cost
	Growth      *Growth
	Render      *RenderInfo
	Description *Description

	PowerSource    *PowerSource
	PowerConsumer  *PowerConsumer
	PowerConductor bool

	WaterSource    *WaterSource
	WaterConsumer  *WaterConsumer
	WaterConductor bool

	SewerSource    *SewerSource
	SewerSink      bool
	SewerConductor bool

	Population *Population
	Jobs       *Jobs
	Road       *RoadStats
}

// Has reports whether the def carries the given capability kind.
func (d *Def) Has(k Kind) bool {
	if d == nil {
		return false
	}
	switch k {
	case KindCost:
		return d.Cost != nil
	case KindGrowth:
		return d.Growth != nil
	case KindRenderInfo:
		return d.Render != nil
	case KindDescription:
		return d.Description != nil
	case KindPowerSource:
		return d.PowerSource != nil
	case KindPowerConsumer:
		return d.PowerConsumer != nil
	case KindPowerConductor:
		return d.PowerConductor
	case KindWaterSource:
		return d.WaterSource != nil
	case KindWaterConsumer:
		return d.WaterConsumer != nil
	case KindWaterConductor:
		return d.WaterConductor
	case KindSewerSource:
		return d.SewerSource != nil
	case KindSewerSink:
		return d.SewerSink
	case KindSewerConductor:
		return d.SewerConductor
	case KindPopulation:
		return d.Population != nil
	case KindJobs:
		return d.Jobs != nil
	case KindRoadStats:
		return d.Road != nil
	}
	return false
}

// defs is the dense registry, indexed by tile type id. Empty has no def:
// it carries no capabilities and is never rendered.
var defs = [maxType + 1]*Def{
	Dirt: {
		Description: &Description{Name: "Dirt"},
		Render:      &RenderInfo{Color: Color{0.4, 0.3, 0.2}, Height: 0.1},
		Cost:        &Cost{Value: 0},
	},
	Water: {
		Description: &Description{Name: "Water"},
		Render:      &RenderInfo{Color: Color{0.2, 0.4, 0.8}, Height: 0.1},
		Cost:        &Cost{Value: 0},
	},
	Road: {
		Description: &Description{Name: "Road"},
		Render:      &RenderInfo{Color: Color{0.2, 0.2, 0.2}, Height: 0.15},
		Cost:        &Cost{Value: 10},
		Road:        &RoadStats{Capacity: 100, SpeedLimit: 1.0},
	},
	PowerLine: {
		Description:    &Description{Name: "Power Line"},
		Render:         &RenderInfo{Color: Color{0.9, 0.9, 0.4}, Height: 0.4},
		Cost:           &Cost{Value: 5},
		PowerConductor: true,
	},
	WaterPump: {
		Description:    &Description{Name: "Water Pump"},
		Render:         &RenderInfo{Color: Color{0.2, 0.6, 1.0}, Height: 0.8},
		Cost:           &Cost{Value: 500},
		WaterSource:    &WaterSource{Capacity: 1000, Radius: 6},
		PowerConsumer:  &PowerConsumer{Demand: 50},
		PowerConductor: true,
	},
	WaterPipe: {
		Description:    &Description{Name: "Water Pipe"},
		Render:         &RenderInfo{Color: Color{0.2, 0.6, 1.0}, Height: 0.2},
		Cost:           &Cost{Value: 5},
		WaterConductor: true,
	},
	SewerPipe: {
		Description:    &Description{Name: "Sewer Pipe"},
		Render:         &RenderInfo{Color: Color{0.4, 0.3, 0.1}, Height: 0.2},
		Cost:           &Cost{Value: 5},
		SewerConductor: true,
	},

	// Undeveloped zones. Zones conduct all three utilities so service can
	// spread through a zoned block before it develops.
	Residential: {
		Description:    &Description{Name: "Residential (Zone)"},
		Render:         &RenderInfo{Color: Color{0.0, 0.4, 0.0}, Height: 0.1},
		Growth:         &Growth{Target: ResidentialLvl1, Chance: 1.0},
		Cost:           &Cost{Value: 100},
		PowerConductor: true,
		WaterConductor: true,
		SewerConductor: true,
		Population:     &Population{Capacity: 5},
	},
	Commercial: {
		Description:    &Description{Name: "Commercial (Zone)"},
		Render:         &RenderInfo{Color: Color{0.0, 0.0, 0.4}, Height: 0.1},
		Growth:         &Growth{Target: CommercialLvl1, Chance: 1.0},
		Cost:           &Cost{Value: 100},
		PowerConductor: true,
		WaterConductor: true,
		SewerConductor: true,
		Jobs:           &Jobs{Capacity: 5},
	},
	Industrial: {
		Description:    &Description{Name: "Industrial (Zone)"},
		Render:         &RenderInfo{Color: Color{0.4, 0.4, 0.0}, Height: 0.1},
		Growth:         &Growth{Target: IndustrialLvl1, Chance: 1.0},
		Cost:           &Cost{Value: 100},
		PowerConductor: true,
		WaterConductor: true,
		SewerConductor: true,
		Jobs:           &Jobs{Capacity: 8},
	},

	// Developed zones.
	ResidentialLvl1: {
		Description:    &Description{Name: "Small House"},
		Render:         &RenderInfo{Color: Color{0.0, 0.8, 0.0}, Height: 0.5},
		Cost:           &Cost{Value: 0},
		PowerConsumer:  &PowerConsumer{Demand: 10},
		PowerConductor: true,
		WaterConsumer:  &WaterConsumer{Demand: 10},
		WaterConductor: true,
		SewerSource:    &SewerSource{Output: 10},
		SewerConductor: true,
		Population:     &Population{Capacity: 20},
	},
	CommercialLvl1: {
		Description:    &Description{Name: "Small Shop"},
		Render:         &RenderInfo{Color: Color{0.0, 0.0, 0.8}, Height: 0.6},
		Cost:           &Cost{Value: 0},
		PowerConsumer:  &PowerConsumer{Demand: 10},
		PowerConductor: true,
		WaterConsumer:  &WaterConsumer{Demand: 10},
		WaterConductor: true,
		SewerSource:    &SewerSource{Output: 10},
		SewerConductor: true,
		Jobs:           &Jobs{Capacity: 15},
	},
	IndustrialLvl1: {
		Description:    &Description{Name: "Factory"},
		Render:         &RenderInfo{Color: Color{0.8, 0.8, 0.0}, Height: 0.7},
		Cost:           &Cost{Value: 0},
		PowerConsumer:  &PowerConsumer{Demand: 10},
		PowerConductor: true,
		WaterConsumer:  &WaterConsumer{Demand: 10},
		WaterConductor: true,
		SewerSource:    &SewerSource{Output: 10},
		SewerConductor: true,
		Jobs:           &Jobs{Capacity: 30},
	},
	PowerPlant: {
		Description:    &Description{Name: "Power Plant"},
		Render:         &RenderInfo{Color: Color{0.8, 0.2, 0.2}, Height: 2.0},
		Cost:           &Cost{Value: 1000},
		PowerSource:    &PowerSource{Capacity: 1000, Radius: 4},
		PowerConductor: true,
	},
}

// Lookup returns the capability record for a tile type, or (nil, false)
// for Empty and unknown ids.
func Lookup(t Type) (*Def, bool) {
	if t < 0 || t > maxType {
		return nil, false
	}
	d := defs[t]
	return d, d != nil
}

// Has reports whether the tile type carries the given capability.
func Has(t Type, k Kind) bool {
	d, ok := Lookup(t)
	return ok && d.Has(k)
}

// Name returns the display name of a tile type, or "Unknown" when it has
// no description.
func Name(t Type) string {
	if d, ok := Lookup(t); ok && d.Description != nil {
		return d.Description.Name
	}
	return "Unknown"
}

// BuildCost returns the placement cost of a tile type, 0 when absent.
func BuildCost(t Type) int {
	if d, ok := Lookup(t); ok && d.Cost != nil {
		return d.Cost.Value
	}
	return 0
}

// DisplayColor returns the render color of a tile type. Magenta flags a
// tile with no render info.
func DisplayColor(t Type) Color {
	if d, ok := Lookup(t); ok && d.Render != nil {
		return d.Render.Color
	}
	return Color{1.0, 0.0, 1.0}
}

// Height returns the render extrusion height of a tile type.
func Height(t Type) float64 {
	if d, ok := Lookup(t); ok && d.Render != nil {
		return d.Render.Height
	}
	return 0.1
}

// GrowthTarget returns the developed tile type an undeveloped zone grows
// into, or Empty when the tile does not grow.
func GrowthTarget(t Type) Type {
	if d, ok := Lookup(t); ok && d.Growth != nil {
		return d.Growth.Target
	}
	return Empty
}
