package nsga

import (
	"math"
	"math/rand"
	"slices"
	"sort"

	"dockSched/internal/dock"
)

// Dominates сообщает, доминирует ли a над b: не хуже по обеим целям и строго лучше хотя бы по одной.
func Dominates(a, b dock.Fitness) bool {
	return a.Wait <= b.Wait && a.Makespan <= b.Makespan &&
		(a.Wait < b.Wait || a.Makespan < b.Makespan)
}

var objectives = [...]func(dock.Fitness) float64{
	func(f dock.Fitness) float64 { return f.Wait },
	func(f dock.Fitness) float64 { return f.Makespan },
}

// nonDominatedSort разбивает пул на фронты F1, F2, ...
// Возвращаются индексы в pool; внутри фронта индексы упорядочены по возрастанию.
func nonDominatedSort(pool []*Individual) [][]int {
	n := len(pool)
	dominated := make([][]int, n)
	count := make([]int, n)

	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			switch {
			case Dominates(pool[p].fitness, pool[q].fitness):
				dominated[p] = append(dominated[p], q)
				count[q]++
			case Dominates(pool[q].fitness, pool[p].fitness):
				dominated[q] = append(dominated[q], p)
				count[p]++
			}
		}
	}

	var current []int
	for p := 0; p < n; p++ {
		if count[p] == 0 {
			current = append(current, p)
		}
	}

	var fronts [][]int
	for len(current) > 0 {
		fronts = append(fronts, current)
		var next []int
		for _, p := range current {
			for _, q := range dominated[p] {
				count[q]--
				if count[q] == 0 {
					next = append(next, q)
				}
			}
		}
		slices.Sort(next)
		current = next
	}
	return fronts
}

// crowdingDistance возвращает расстояние скученности для каждого элемента front (в том же порядке).
func crowdingDistance(pool []*Individual, front []int) []float64 {
	k := len(front)
	dist := make([]float64, k)
	if k <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}

	idx := make([]int, k)
	for _, obj := range objectives {
		for i := range idx {
			idx[i] = i
		}
		value := func(i int) float64 { return obj(pool[front[idx[i]]].fitness) }
		sort.SliceStable(idx, func(i, j int) bool { return value(i) < value(j) })

		// Граничные особи сохраняются всегда
		dist[idx[0]] = math.Inf(1)
		dist[idx[k-1]] = math.Inf(1)

		lo, hi := value(0), value(k-1)
		if hi == lo {
			continue
		}
		for i := 1; i < k-1; i++ {
			dist[idx[i]] += (value(i+1) - value(i-1)) / (hi - lo)
		}
	}
	return dist
}

// rankPool выставляет Rank и Crowding всем особям пула и возвращает фронты.
func rankPool(pool []*Individual) [][]int {
	fronts := nonDominatedSort(pool)
	for rank, front := range fronts {
		dist := crowdingDistance(pool, front)
		for i, pi := range front {
			pool[pi].Rank = rank
			pool[pi].Crowding = dist[i]
		}
	}
	return fronts
}

// selectNSGA2 реализует отбор окружения NSGA-II: фронты переносятся целиком,
// пока помещаются, переполняющий фронт усекается по убыванию расстояния скученности.
func selectNSGA2(pool []*Individual, mu int) []*Individual {
	fronts := rankPool(pool)
	next := make([]*Individual, 0, mu)

	for _, front := range fronts {
		if len(next)+len(front) <= mu {
			for _, pi := range front {
				next = append(next, pool[pi])
			}
			if len(next) == mu {
				break
			}
			continue
		}

		byCrowding := slices.Clone(front)
		sort.SliceStable(byCrowding, func(i, j int) bool {
			return pool[byCrowding[i]].Crowding > pool[byCrowding[j]].Crowding
		})
		for _, pi := range byCrowding[:mu-len(next)] {
			next = append(next, pool[pi])
		}
		break
	}
	return next
}

// crowdedBetter — оператор сравнения NSGA-II: меньший ранг, при равенстве — большее расстояние.
func crowdedBetter(a, b *Individual) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Crowding > b.Crowding
}

// crowdedTournament реализует бинарный турнир по оператору скученности.
func crowdedTournament(pop []*Individual, rng *rand.Rand) *Individual {
	if len(pop) == 1 {
		return pop[0]
	}
	i := rng.Intn(len(pop))
	j := rng.Intn(len(pop) - 1)
	if j >= i {
		j++
	}
	a, b := pop[i], pop[j]
	switch {
	case crowdedBetter(a, b):
		return a
	case crowdedBetter(b, a):
		return b
	case rng.Intn(2) == 0:
		return a
	default:
		return b
	}
}
