package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dockSched/internal/nsga"
	"dockSched/internal/opt"
)

// WriteLogCSV сохраняет журнал поколений: минимумы и средние значения целей.
func WriteLogCSV(path string, log []nsga.GenStats) error {
	rows := [][]string{{
		"gen", "evals", "archive",
		"min_wait", "min_makespan", "mean_wait", "mean_makespan",
	}}
	for _, st := range log {
		rows = append(rows, []string{
			strconv.Itoa(st.Gen),
			strconv.Itoa(st.Evals),
			strconv.Itoa(st.ArchiveSize),
			ftoa(st.Min.Wait),
			ftoa(st.Min.Makespan),
			ftoa(st.Mean.Wait),
			ftoa(st.Mean.Makespan),
		})
	}
	return writeCSV(path, rows)
}

// WriteFrontCSV сохраняет точки Парето-фронта; порядок работ записывается через пробел.
func WriteFrontCSV(path string, front []opt.Point) error {
	rows := [][]string{{"wait", "makespan", "order"}}
	for _, p := range front {
		ids := make([]string, len(p.Order))
		for i, id := range p.Order {
			ids[i] = strconv.Itoa(id)
		}
		rows = append(rows, []string{ftoa(p.Wait), ftoa(p.Makespan), strings.Join(ids, " ")})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
