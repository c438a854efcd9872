package nsga

import (
	"math/rand"
	"slices"
)

// shufflePermutation выполняет случайную перестановку элементов.
func shufflePermutation(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// cutPoints выбирает две различные точки разреза 0 <= a < b <= n. Требует n >= 1.
func cutPoints(n int, rng *rand.Rand) (int, int) {
	a := rng.Intn(n + 1)
	b := rng.Intn(n)
	if b >= a {
		b++
	} else {
		a, b = b, a
	}
	return a, b
}

// pmxCrossover реализует оператор Partially Mapped Crossover.
// c1 получает сегмент [a, b) из p2, c2 — из p1; остальные позиции заполняются
// генами собственного родителя с разрешением конфликтов по отображению сегмента.
// m1 и m2 — рабочие буферы длины len(p1).
func pmxCrossover(p1, p2, c1, c2 []int, rng *rand.Rand, m1, m2 []int) {
	n := len(p1)
	copy(c1, p1)
	copy(c2, p2)
	if n < 2 {
		return
	}

	a, b := cutPoints(n, rng)
	pmxSegment(p1, p2, c1, c2, a, b, m1, m2)
}

func pmxSegment(p1, p2, c1, c2 []int, a, b int, m1, m2 []int) {
	n := len(p1)
	for i := range m1 {
		m1[i] = -1
		m2[i] = -1
	}

	// Копирование сегментов и построение отображений
	for i := a; i < b; i++ {
		c1[i] = p2[i]
		c2[i] = p1[i]
		m1[p2[i]] = p1[i]
		m2[p1[i]] = p2[i]
	}

	for i := 0; i < n; i++ {
		if i >= a && i < b {
			continue
		}
		gene := p1[i]
		for m1[gene] != -1 {
			gene = m1[gene]
		}
		c1[i] = gene

		gene = p2[i]
		for m2[gene] != -1 {
			gene = m2[gene]
		}
		c2[i] = gene
	}
}

// inversionMutation разворачивает случайный отрезок [c, d) на месте.
func inversionMutation(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	c, d := cutPoints(len(p), rng)
	slices.Reverse(p[c:d])
}
