package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeScenario lays down the reference dataset: six authors in three label
// pairs, three papers each written by two authors, one conference hosting
// every paper.
func writeScenario(t *testing.T) string {
	t.Helper()

	tables := map[string][]string{
		"author_label.txt": {
			"0\t0\ta0", "1\t0\ta1",
			"2\t1\ta2", "3\t1\ta3",
			"4\t2\ta4", "5\t2\ta5",
		},
		"paper.txt":       {"0\tp0", "1\tp1", "2\tp2"},
		"paper_label.txt": {"0\t0\tp0", "1\t1\tp1", "2\t2\tp2"},
		"conf.txt":        {"0\tKDD"},
		"conf_label.txt":  {"0\tKDD\tignored"},
		"paper_author.txt": {
			"0\t0", "0\t1",
			"1\t2", "1\t3",
			"2\t4", "2\t5",
		},
		"paper_conf.txt": {"0\t0", "1\t0", "2\t0"},
	}

	dir := t.TempDir()
	for name, lines := range tables {
		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func scenarioConfig(t *testing.T, dir string) *Config {
	t.Helper()

	cfg := NewConfig()
	cfg.Set("data.dir", dir)
	cfg.Set("embedding.producer", "onehot")
	cfg.Set("clustering.k", []int{3})
	cfg.Set("clustering.seed", int64(7))
	cfg.Set("logging.level", "error")
	return cfg
}

func TestPipelineRun(t *testing.T) {
	t.Run("EndToEndScenario", func(t *testing.T) {
		dir := writeScenario(t)

		result, err := New(scenarioConfig(t, dir)).Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if result.RunID == "" {
			t.Error("missing run id")
		}
		if result.NumNodes != 10 {
			t.Errorf("expected 10 nodes, got %d", result.NumNodes)
		}
		// 3 author-clique + 6 author-paper + 3 paper-conf + 3 positional
		// author-conf edges.
		if result.NumEdges != 15 {
			t.Errorf("expected 15 edges, got %d", result.NumEdges)
		}
		if result.Producer != "onehot" {
			t.Errorf("producer = %q, want onehot", result.Producer)
		}
		if len(result.Evaluations) != 1 || result.Evaluations[0].K != 3 {
			t.Fatalf("unexpected evaluations: %+v", result.Evaluations)
		}

		m := result.Evaluations[0].Metrics
		if m.NMI < 0 || m.NMI > 1 {
			t.Errorf("NMI %v outside [0, 1]", m.NMI)
		}
		if m.Conductance < 0 || m.Conductance > 1 {
			t.Errorf("conductance %v outside [0, 1]", m.Conductance)
		}
		if m.Density < 0 || m.Density > 1 {
			t.Errorf("density %v outside [0, 1]", m.Density)
		}
		if m.Modularity < -1 || m.Modularity > 1 {
			t.Errorf("modularity %v outside [-1, 1]", m.Modularity)
		}
	})

	t.Run("MultipleClusterCountsReuseGraph", func(t *testing.T) {
		dir := writeScenario(t)
		cfg := scenarioConfig(t, dir)
		cfg.Set("clustering.k", []int{2, 3, 5})

		result, err := New(cfg).Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if len(result.Evaluations) != 3 {
			t.Fatalf("expected 3 evaluations, got %d", len(result.Evaluations))
		}
		for i, k := range []int{2, 3, 5} {
			if result.Evaluations[i].K != k {
				t.Errorf("evaluation %d has k=%d, want %d", i, result.Evaluations[i].K, k)
			}
		}
	})

	t.Run("DeterministicMetrics", func(t *testing.T) {
		dir := writeScenario(t)

		first, err := New(scenarioConfig(t, dir)).Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		second, err := New(scenarioConfig(t, dir)).Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(first.Evaluations, second.Evaluations) {
			t.Errorf("identical configs gave different evaluations: %+v vs %+v",
				first.Evaluations, second.Evaluations)
		}
	})

	t.Run("SpectralProducerRuns", func(t *testing.T) {
		dir := writeScenario(t)
		cfg := scenarioConfig(t, dir)
		cfg.Set("embedding.producer", "spectral")
		cfg.Set("embedding.dimension", 4)

		result, err := New(cfg).Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if result.Producer != "spectral" {
			t.Errorf("producer = %q, want spectral", result.Producer)
		}
	})

	t.Run("MissingTableAbortsRun", func(t *testing.T) {
		dir := writeScenario(t)
		if err := os.Remove(filepath.Join(dir, "conf.txt")); err != nil {
			t.Fatal(err)
		}

		if _, err := New(scenarioConfig(t, dir)).Run(context.Background()); err == nil {
			t.Error("expected error for missing table")
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		dir := writeScenario(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := New(scenarioConfig(t, dir)).Run(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("UnknownProducerFails", func(t *testing.T) {
		dir := writeScenario(t)
		cfg := scenarioConfig(t, dir)
		cfg.Set("embedding.producer", "gat")

		if _, err := New(cfg).Run(context.Background()); err == nil {
			t.Error("expected error for unknown embedding producer")
		}
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.DataDir() != "./data" {
		t.Errorf("data dir = %q, want ./data", cfg.DataDir())
	}
	if cfg.EmbeddingProducer() != "spectral" {
		t.Errorf("producer = %q, want spectral", cfg.EmbeddingProducer())
	}
	if cfg.EmbeddingDimension() != 16 {
		t.Errorf("dimension = %d, want 16", cfg.EmbeddingDimension())
	}
	if !reflect.DeepEqual(cfg.ClusterCounts(), []int{4}) {
		t.Errorf("cluster counts = %v, want [4]", cfg.ClusterCounts())
	}
	if cfg.ClusteringSeed() != 42 {
		t.Errorf("seed = %d, want 42", cfg.ClusteringSeed())
	}
	if cfg.JoinDerivedEdges() {
		t.Error("derived edges should default to positional pairing")
	}

	cfg.Set("embedding.dimension", 3)
	if cfg.EmbeddingDimension() != 3 {
		t.Errorf("Set did not override dimension, got %d", cfg.EmbeddingDimension())
	}
}
