package bench

import (
	"sort"

	"dockSched/internal/opt"
)

// Hypervolume — площадь области, доминируемой фронтом и ограниченной опорной точкой ref
// (обе цели минимизируются). Точки, не доминирующие ref, не учитываются.
func Hypervolume(front []opt.Point, ref opt.Point) float64 {
	pts := make([]opt.Point, 0, len(front))
	for _, p := range front {
		if p.Wait < ref.Wait && p.Makespan < ref.Makespan {
			pts = append(pts, p)
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Wait != pts[j].Wait {
			return pts[i].Wait < pts[j].Wait
		}
		return pts[i].Makespan < pts[j].Makespan
	})

	hv := 0.0
	ceiling := ref.Makespan
	for _, p := range pts {
		if p.Makespan >= ceiling {
			continue
		}
		hv += (ref.Wait - p.Wait) * (ceiling - p.Makespan)
		ceiling = p.Makespan
	}
	return hv
}

// ReferencePoint строит опорную точку чуть хуже худших значений по всем фронтам.
func ReferencePoint(fronts ...[]opt.Point) opt.Point {
	var ref opt.Point
	for _, f := range fronts {
		for _, p := range f {
			ref.Wait = max(ref.Wait, p.Wait)
			ref.Makespan = max(ref.Makespan, p.Makespan)
		}
	}
	ref.Wait = ref.Wait*1.1 + 1
	ref.Makespan = ref.Makespan*1.1 + 1
	return ref
}
