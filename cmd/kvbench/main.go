// Command kvbench sweeps cache-replacement policies across capacities
// against recorded KV-cache prefix-block traces, reporting hit ratios.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/go-singleflightx"
	"github.com/samber/kvcachepolicy/internal/logger"
	"github.com/samber/kvcachepolicy/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config/test.yaml", "path to the sweep config YAML file")
	inputDir := flag.String("input-dir", "input_samples", "directory containing trace files")
	outputDir := flag.String("output-dir", "output", "directory to write the CSV report to")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log := logger.New(*logLevel)

	if err := run(*configPath, *inputDir, *outputDir, log); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(configPath, inputDir, outputDir string, log *logger.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	// Suites that reference the same trace file share one load: the file
	// list is deduplicated and loaded through a single singleflight DoX call.
	// A missing file is skipped with a warning; a malformed trace is fatal.
	var loader singleflightx.Group[string, []record]
	var traceErr error
	traceFiles := make([]string, 0, len(cfg.Tests))
	seen := map[string]bool{}
	for _, s := range cfg.Tests {
		if seen[s.File] {
			continue
		}
		seen[s.File] = true
		traceFiles = append(traceFiles, s.File)
	}

	loaded := loader.DoX(traceFiles, func(missing []string) (map[string][]record, error) {
		out := make(map[string][]record, len(missing))
		for _, file := range missing {
			path := filepath.Join(inputDir, file)
			f, err := os.Open(path)
			if err != nil {
				log.Warnf("skipping missing trace file %q: %v", file, err)
				continue
			}
			records, err := loadTrace(f)
			f.Close()
			if err != nil {
				if traceErr == nil {
					traceErr = fmt.Errorf("trace file %q: %w", file, err)
				}
				continue
			}
			out[file] = records
		}
		return out, nil
	})
	if traceErr != nil {
		return traceErr
	}

	reportPath := filepath.Join(outputDir, "sweep_"+time.Now().UTC().Format("20060102_150405")+".csv")
	report, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer report.Close()

	w := csv.NewWriter(report)
	defer w.Flush()
	if err := w.Write([]string{"file", "algorithm", "capacity", "total", "hits", "misses", "hit_ratio", "elapsed_seconds", "size_bytes"}); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	for _, s := range cfg.Tests {
		entry, ok := loaded[s.File]
		if !ok || entry.Err != nil || len(entry.Value) == 0 {
			log.Warnf("skipping suite for unavailable file %q", s.File)
			continue
		}

		log.Infof("==== %s (%s) ====", s.File, s.Algorithm)
		capacities := append([]int(nil), s.Capacities...)
		sort.Ints(capacities)

		for _, capacity := range capacities {
			start := time.Now()

			// Each capacity run gets its own registry: the collector's
			// metric descriptors carry no capacity label, so registering
			// successive runs into one registry would collide.
			registry := prometheus.NewRegistry()
			collector := metrics.NewCollector(s.File, capacity, s.Algorithm).(*metrics.PrometheusCollector)
			if err := registry.Register(collector); err != nil {
				log.Errorf("capacity %d: registering metrics: %v", capacity, err)
				continue
			}

			policy, residentStore, err := buildPolicy(s.Algorithm, capacity, collector)
			if err != nil {
				log.Errorf("capacity %d: %v", capacity, err)
				continue
			}

			st := evaluate(policy, entry.Value, collector)
			elapsed := time.Since(start)

			collector.SetResidentCount(int64(residentStore.Size()))
			collector.SetSizeBytes(residentStore.ApproxBytes())
			if _, err := registry.Gather(); err != nil {
				log.Warnf("capacity %d: gathering metrics: %v", capacity, err)
			}

			log.Infof("  capacity=%d total=%d hits=%d misses=%d hit_ratio=%.5f elapsed=%s size_bytes=%d",
				capacity, st.total, st.hits, st.misses, st.hitRatio, elapsed, collector.SizeBytes())

			if err := w.Write([]string{
				s.File,
				s.Algorithm,
				fmt.Sprintf("%d", capacity),
				fmt.Sprintf("%d", st.total),
				fmt.Sprintf("%d", st.hits),
				fmt.Sprintf("%d", st.misses),
				fmt.Sprintf("%.5f", st.hitRatio),
				fmt.Sprintf("%.5f", elapsed.Seconds()),
				fmt.Sprintf("%d", collector.SizeBytes()),
			}); err != nil {
				return fmt.Errorf("report: %w", err)
			}
		}
	}

	log.Infof("report written to %s", reportPath)
	return nil
}
