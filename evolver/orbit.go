package evolver

import "ariadne/enclosure"

// Orbit records the initial set together with the reach, intermediate,
// and final sets the loop of spec.md 4.9 accumulates. Intermediate
// holds every timed enclosure popped off the working set (the full
// trace), Reach holds every flow tube swept out between two
// intermediate points, and Final holds the enclosures that reached the
// time bound.
type Orbit struct {
	Initial      *enclosure.Enclosure
	Reach        []*enclosure.Enclosure
	Intermediate []TimedEnclosure
	Final        []*enclosure.Enclosure
}

// TimedEnclosure pairs an enclosure with the time it was reached,
// mirroring VectorFieldEvolver's TimedEnclosureType.
type TimedEnclosure struct {
	Time      float64
	Enclosure *enclosure.Enclosure
}

// Vertices flattens reach, intermediate, and final enclosures into
// polygon vertex lists keyed by role, for the Canvas collaborator
// (spec.md 6 / the orbit.h serialization supplement).
func (o *Orbit) Vertices() map[string][][][2]float64 {
	out := map[string][][][2]float64{
		"reach":        verticesOf(o.Reach),
		"final":        verticesOf(o.Final),
		"intermediate": verticesOfTimed(o.Intermediate),
	}
	return out
}

func verticesOf(es []*enclosure.Enclosure) [][][2]float64 {
	out := make([][][2]float64, 0, len(es))
	for _, e := range es {
		if v := e.Vertices(); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func verticesOfTimed(ts []TimedEnclosure) [][][2]float64 {
	out := make([][][2]float64, 0, len(ts))
	for _, t := range ts {
		if v := t.Enclosure.Vertices(); v != nil {
			out = append(out, v)
		}
	}
	return out
}
