package nsga

import "dockSched/internal/dock"

// Archive хранит недоминируемые особи, найденные за все поколения.
// Одинаковые перестановки хранятся один раз; разные перестановки
// с одинаковыми значениями целей сохраняются обе.
type Archive struct {
	// Limit > 0 ограничивает размер; при переполнении остаются самые ранние по порядку вставки.
	Limit   int
	members []*Individual
}

func NewArchive(limit int) *Archive {
	return &Archive{Limit: limit}
}

// Update заменяет архив недоминируемым подмножеством (архив ∪ pop).
// Все особи pop должны быть оценены.
func (a *Archive) Update(pop []*Individual) {
	old := len(a.members)
	cands := make([]*Individual, 0, old+len(pop))
	cands = append(cands, a.members...)

	for _, ind := range pop {
		dup := false
		for _, c := range cands {
			if c == ind || c.sameAs(ind) {
				dup = true
				break
			}
		}
		if !dup {
			cands = append(cands, ind)
		}
	}

	kept := make([]*Individual, 0, len(cands))
	for i, c := range cands {
		dominated := false
		for j, other := range cands {
			if i != j && Dominates(other.fitness, c.fitness) {
				dominated = true
				break
			}
		}
		if dominated {
			continue
		}
		// Новые члены копируются, чтобы отбор не менял их Rank и Crowding
		if i >= old {
			c = c.Clone()
		}
		kept = append(kept, c)
		if a.Limit > 0 && len(kept) == a.Limit {
			break
		}
	}
	a.members = kept
}

func (a *Archive) Len() int { return len(a.members) }

// Members возвращает копию среза членов архива в порядке вставки.
func (a *Archive) Members() []*Individual {
	return append([]*Individual(nil), a.members...)
}

func (a *Archive) Fitnesses() []dock.Fitness {
	out := make([]dock.Fitness, len(a.members))
	for i, m := range a.members {
		out[i] = m.fitness
	}
	return out
}
