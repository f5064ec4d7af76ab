// Package guidance turns a routed path into turn-by-turn NavigationSteps,
// grouping consecutive edges that share an effective street name and
// classifying the heading change at each group boundary.
package guidance

import (
	"fmt"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/geo"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
)

// highwayDescriptions maps a highway classification to the phrase used when
// the edge carries no street name of its own.
var highwayDescriptions = map[string]string{
	"footway":        "footpath",
	"path":           "path",
	"pedestrian":     "pedestrian way",
	"steps":          "steps",
	"cycleway":       "cycleway",
	"service":        "service road",
	"track":          "track",
	"residential":    "road",
	"living_street":  "road",
	"tertiary":       "road",
	"tertiary_link":  "road",
	"secondary":      "road",
	"secondary_link": "road",
	"primary":        "road",
	"primary_link":   "road",
	"trunk":          "road",
	"unclassified":   "road",
}

func effectiveName(streetName, highway string) string {
	if streetName != "" {
		return streetName
	}
	if desc, ok := highwayDescriptions[highway]; ok {
		return desc
	}
	return "road"
}

type edgeDecoration struct {
	effectiveName string
	streetName    string
	distance      float64
	entryBearing  float64
	exitBearing   float64
	startNode     int32
}

// Synthesize builds the ordered NavigationSteps for path (external-id-free,
// internal indices as returned by the router). Returns ok=false if the path
// is too short to contain any edge. Every edge is described even when it
// carries neither a street name nor a highway classification: effectiveName
// falls back to "road" so per-step distances always sum to the path total.
func Synthesize(g *graph.CompactGraph, path []int32) ([]datastructure.NavigationStep, bool) {
	if len(path) < 2 {
		return nil, false
	}

	decorations := make([]edgeDecoration, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		u, v := path[i], path[i+1]
		uLat, uLon := g.Coordinate(u)
		vLat, vLon := g.Coordinate(v)

		name := g.EdgeName(u, v)
		highway := g.EdgeHighway(u, v)

		dist := geo.CalculateHaversineDistance(uLat, uLon, vLat, vLon)

		// A zero-length edge (coincident nodes) leaves bearing undefined;
		// carry over the previous edge's bearing instead of reporting a
		// meaningless 0.
		var bearing float64
		if dist > 0 {
			bearing = geo.BearingTo(uLat, uLon, vLat, vLon)
		} else if len(decorations) > 0 {
			bearing = decorations[len(decorations)-1].exitBearing
		}

		decorations = append(decorations, edgeDecoration{
			effectiveName: effectiveName(name, highway),
			streetName:    name,
			distance:      dist,
			entryBearing:  bearing,
			exitBearing:   bearing,
			startNode:     u,
		})
	}

	groups := groupByEffectiveName(decorations)
	steps := make([]datastructure.NavigationStep, 0, len(groups)+1)

	for i, grp := range groups {
		if i == 0 {
			compass := geo.CompassPoint(grp.entryBearing)
			steps = append(steps, datastructure.NavigationStep{
				Instruction:  fmt.Sprintf("Head %s on %s", compass, grp.effectiveName),
				StreetName:   grp.streetName,
				Direction:    datastructure.TurnStart,
				Angle:        0,
				Distance:     grp.distance,
				StartNodeIdx: grp.startNode,
				EntryBearing: grp.entryBearing,
				ExitBearing:  grp.exitBearing,
				Point:        nodePoint(g, grp.startNode),
			})
			continue
		}

		prev := groups[i-1]
		angle := geo.NormalizeAngle(grp.entryBearing - prev.exitBearing)
		direction, instruction := classifyTurn(angle, grp.effectiveName)

		steps = append(steps, datastructure.NavigationStep{
			Instruction:  instruction,
			StreetName:   grp.streetName,
			Direction:    direction,
			Angle:        angle,
			Distance:     grp.distance,
			StartNodeIdx: grp.startNode,
			EntryBearing: grp.entryBearing,
			ExitBearing:  grp.exitBearing,
			Point:        nodePoint(g, grp.startNode),
		})
	}

	lastNode := path[len(path)-1]
	steps = append(steps, datastructure.NavigationStep{
		Instruction:  "Arrive at destination",
		Direction:    datastructure.TurnArrive,
		Angle:        0,
		Distance:     0,
		StartNodeIdx: lastNode,
		Point:        nodePoint(g, lastNode),
	})

	return steps, true
}

func nodePoint(g *graph.CompactGraph, idx int32) datastructure.Coordinate {
	lat, lon := g.Coordinate(idx)
	return datastructure.NewCoordinate(lat, lon)
}

type stepGroup struct {
	effectiveName string
	streetName    string
	distance      float64
	entryBearing  float64
	exitBearing   float64
	startNode     int32
}

// groupByEffectiveName merges consecutive edges sharing the same effective
// name into a single group, per the spec's step-grouping rule.
func groupByEffectiveName(decorations []edgeDecoration) []stepGroup {
	groups := make([]stepGroup, 0, len(decorations))
	cur := stepGroup{
		effectiveName: decorations[0].effectiveName,
		streetName:    decorations[0].streetName,
		distance:      decorations[0].distance,
		entryBearing:  decorations[0].entryBearing,
		exitBearing:   decorations[0].exitBearing,
		startNode:     decorations[0].startNode,
	}

	for _, d := range decorations[1:] {
		if d.effectiveName == cur.effectiveName {
			cur.distance += d.distance
			cur.exitBearing = d.exitBearing
			continue
		}
		groups = append(groups, cur)
		cur = stepGroup{
			effectiveName: d.effectiveName,
			streetName:    d.streetName,
			distance:      d.distance,
			entryBearing:  d.entryBearing,
			exitBearing:   d.exitBearing,
			startNode:     d.startNode,
		}
	}
	groups = append(groups, cur)
	return groups
}

func classifyTurn(angle float64, name string) (datastructure.TurnDirection, string) {
	abs := angle
	if abs < 0 {
		abs = -abs
	}
	left := angle < 0

	switch {
	case abs < 15:
		return datastructure.TurnStraight, fmt.Sprintf("Continue on %s", name)
	case abs < 45:
		if left {
			return datastructure.TurnSlightLeft, fmt.Sprintf("Turn slight left onto %s", name)
		}
		return datastructure.TurnSlightRight, fmt.Sprintf("Turn slight right onto %s", name)
	case abs < 120:
		if left {
			return datastructure.TurnLeft, fmt.Sprintf("Turn left onto %s", name)
		}
		return datastructure.TurnRight, fmt.Sprintf("Turn right onto %s", name)
	case abs < 160:
		if left {
			return datastructure.TurnSharpLeft, fmt.Sprintf("Turn sharp left onto %s", name)
		}
		return datastructure.TurnSharpRight, fmt.Sprintf("Turn sharp right onto %s", name)
	default:
		return datastructure.TurnUTurn, fmt.Sprintf("Make a U-turn onto %s", name)
	}
}
