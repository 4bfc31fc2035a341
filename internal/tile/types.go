// Package tile defines the tile type enumeration and the capability
// registry that describes what each tile type can do.
package tile

// Type identifies a kind of tile. The numeric values are part of the
// save format and must not be reordered.
type Type int32

const (
	Empty Type = 0
	Dirt  Type = 1
	Water Type = 2
	Road  Type = 3

	// Undeveloped zones.
	Residential Type = 4
	Commercial  Type = 5
	Industrial  Type = 6

	// Infrastructure.
	PowerPlant Type = 7
	PowerLine  Type = 8
	WaterPump  Type = 9
	WaterPipe  Type = 10

	// Developed zones.
	ResidentialLvl1 Type = 11
	CommercialLvl1  Type = 12
	IndustrialLvl1  Type = 13

	SewerPipe Type = 14

	maxType = SewerPipe
)

// Kind names a capability a tile type may carry.
type Kind int

const (
	KindCost Kind = iota
	KindGrowth
	KindRenderInfo
	KindDescription
	KindPowerSource
	KindPowerConsumer
	KindPowerConductor
	KindWaterSource
	KindWaterConsumer
	KindWaterConductor
	KindSewerSource
	KindSewerSink
	KindSewerConductor
	KindPopulation
	KindJobs
	KindRoadStats
)

// Color is a normalized RGB triple used by rendering collaborators.
type Color struct {
	R, G, B float64
}

// Cost is the placement price of a tile.
type Cost struct {
	Value int
}

// Growth marks an undeveloped zone and names what it grows into.
type Growth struct {
	Target Type
	Chance float64
}

// RenderInfo carries display color and extrusion height. It is stored in
// the registry for rendering collaborators but never read by the core.
type RenderInfo struct {
	Color  Color
	Height float64
}

// Description holds human-readable tile metadata.
type Description struct {
	Name string
	Info string
}

// PowerSource generates power.
type PowerSource struct {
	Capacity int
	Radius   int
}

// PowerConsumer draws power.
type PowerConsumer struct {
	Demand int
}

// WaterSource generates water (pumps).
type WaterSource struct {
	Capacity int
	Radius   int
}

// WaterConsumer draws water.
type WaterConsumer struct {
	Demand int
}

// SewerSource produces sewage.
type SewerSource struct {
	Output int
}

// Population holds resident and worker capacity.
type Population struct {
	Capacity  int
	Residents int
	Workers   int
}

// Jobs holds workplace capacity.
type Jobs struct {
	Capacity int
	Filled   int
}

// RoadStats carries traffic attributes for road tiles.
type RoadStats struct {
	Capacity   int
	SpeedLimit float64
	Congestion float64 // 0.0 to 1.0, recomputed by consumers of road usage
}
