package dock

import (
	"errors"
	"fmt"
	"math/rand"
)

// Job is a train waiting for a dock of the given class.
type Job struct {
	ID    int
	Size  int
	Class string
}

type SizeRange struct {
	Min int
	Max int
}

// Problem is immutable after construction. Orderings refer to jobs by their
// index in Jobs(), not by ID.
type Problem struct {
	jobs    []Job
	classes []string
	classOf []int
	byID    map[int]int
}

func NewProblem(jobs []Job, classes []string) (*Problem, error) {
	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := classIdx[c]; dup {
			return nil, fmt.Errorf("%w: duplicate resource class %q", ErrInvalidConfiguration, c)
		}
		classIdx[c] = i
	}

	p := &Problem{
		jobs:    append([]Job(nil), jobs...),
		classes: append([]string(nil), classes...),
		classOf: make([]int, len(jobs)),
		byID:    make(map[int]int, len(jobs)),
	}
	for i, j := range jobs {
		if _, dup := p.byID[j.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate job id %d", ErrInvalidConfiguration, j.ID)
		}
		if j.Size <= 0 {
			return nil, fmt.Errorf("%w: job %d size must be > 0 (got %d)", ErrInvalidConfiguration, j.ID, j.Size)
		}
		ci, ok := classIdx[j.Class]
		if !ok {
			return nil, fmt.Errorf("%w: job %d has unknown resource class %q", ErrInvalidConfiguration, j.ID, j.Class)
		}
		p.byID[j.ID] = i
		p.classOf[i] = ci
	}
	return p, nil
}

func (p *Problem) Validate() error {
	if p == nil {
		return errors.New("problem is nil")
	}
	return nil
}

func (p *Problem) Len() int { return len(p.jobs) }

func (p *Problem) Job(i int) Job { return p.jobs[i] }

func (p *Problem) Jobs() []Job { return append([]Job(nil), p.jobs...) }

func (p *Problem) Classes() []string { return append([]string(nil), p.classes...) }

// OrderingFromIDs converts a sequence of job IDs into an ordering of job indices.
func (p *Problem) OrderingFromIDs(ids []int) ([]int, error) {
	if len(ids) != len(p.jobs) {
		return nil, fmt.Errorf("%w: ordering length must be %d (got %d)", ErrInvariantViolation, len(p.jobs), len(ids))
	}
	order := make([]int, len(ids))
	for i, id := range ids {
		idx, ok := p.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown job id %d at position %d", ErrInvariantViolation, id, i)
		}
		order[i] = idx
	}
	if err := ValidatePermutation(order, len(p.jobs)); err != nil {
		return nil, err
	}
	return order, nil
}

// IDs maps an ordering of job indices back to job IDs.
func (p *Problem) IDs(order []int) []int {
	ids := make([]int, len(order))
	for i, idx := range order {
		ids[i] = p.jobs[idx].ID
	}
	return ids
}

// GenerateProblem builds a random instance: job i gets ID i, a size uniform in
// sizes and a class uniform over classes.
func GenerateProblem(numJobs int, sizes SizeRange, classes []string, rng *rand.Rand) (*Problem, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is nil", ErrInvalidConfiguration)
	}
	if numJobs < 0 {
		return nil, fmt.Errorf("%w: number of jobs must be >= 0 (got %d)", ErrInvalidConfiguration, numJobs)
	}
	if sizes.Min > sizes.Max {
		return nil, fmt.Errorf("%w: size range min %d > max %d", ErrInvalidConfiguration, sizes.Min, sizes.Max)
	}
	if sizes.Min < 1 {
		return nil, fmt.Errorf("%w: size range min must be >= 1 (got %d)", ErrInvalidConfiguration, sizes.Min)
	}
	if numJobs > 0 && len(classes) == 0 {
		return nil, fmt.Errorf("%w: at least one resource class is required", ErrInvalidConfiguration)
	}

	span := sizes.Max - sizes.Min + 1
	jobs := make([]Job, numJobs)
	for i := range jobs {
		jobs[i] = Job{
			ID:    i,
			Size:  sizes.Min + rng.Intn(span),
			Class: classes[rng.Intn(len(classes))],
		}
	}
	return NewProblem(jobs, classes)
}
