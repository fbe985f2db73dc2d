// revbench generates a synthetic dirty review dataset and times the
// cleaning stages over it, in memory, without touching disk.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/revclean/revclean/pkg/job"
	"github.com/revclean/revclean/pkg/lang"
	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

var reviewPhrases = []string{
	"This product works really well and arrived quickly",
	"The cable quality is excellent for the price point",
	"Battery life is much better than my previous charger",
	"Totally disappointed with the build quality of this item",
	"Does exactly what the description promises, very happy",
	"The packaging was damaged but the product itself is fine",
}

func generate(n int, missing, linkProb, sentinelProb, dupProb float64, rnd *rand.Rand) *table.Frame {
	f := table.NewStrings([]string{
		"product_id", "user_id", "review_title", "review_content",
		"about_product", "rating", "actual_price", "discounted_price",
		"discount_percentage", "product_link",
	})
	prevID := ""
	prevUser := ""
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		id := fmt.Sprintf("P%05d", rnd.Intn(n))
		user := fmt.Sprintf("U%05d", rnd.Intn(n))
		if prevID != "" && rnd.Float64() < dupProb {
			id, user = prevID, prevUser
		}
		prevID, prevUser = id, user

		set := func(col, v string) {
			if rnd.Float64() >= missing {
				_ = f.SetCell(i, col, v)
			}
		}
		_ = f.SetCell(i, "product_id", id)
		_ = f.SetCell(i, "user_id", user)
		review := reviewPhrases[rnd.Intn(len(reviewPhrases))] + ". " + reviewPhrases[rnd.Intn(len(reviewPhrases))] + "."
		if rnd.Float64() < linkProb {
			review += " see https://example.com/deal"
		}
		_ = f.SetCell(i, "review_content", review)
		set("review_title", reviewPhrases[rnd.Intn(len(reviewPhrases))])
		set("about_product", "USB cable with braided jacket and 1m length")
		rating := "|"
		if rnd.Float64() >= sentinelProb {
			rating = fmt.Sprintf("%.1f", 1.0+rnd.Float64()*4.0)
		}
		_ = f.SetCell(i, "rating", rating)
		_ = f.SetCell(i, "actual_price", fmt.Sprintf("₹%d,%03d", 1+rnd.Intn(9), rnd.Intn(1000)))
		_ = f.SetCell(i, "discounted_price", fmt.Sprintf("₹%d", 100+rnd.Intn(900)))
		_ = f.SetCell(i, "discount_percentage", fmt.Sprintf("%d%%", rnd.Intn(90)))
		set("product_link", "https://example.com/p/"+id)
	}
	return f
}

func main() {
	var (
		rows         = flag.Int("rows", 100_000, "rows to generate")
		missing      = flag.Float64("missing", 0.02, "probability of a missing optional field")
		linkProb     = flag.Float64("links", 0.1, "probability a review contains a URL")
		sentinelProb = flag.Float64("sentinels", 0.01, "probability of an invalid rating sentinel")
		dupProb      = flag.Float64("dups", 0.05, "probability a row duplicates the previous key")
		jsonOut      = flag.Bool("json", false, "emit JSON summary")
		seed         = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seed))
	f := generate(*rows, *missing, *linkProb, *sentinelProb, *dupProb, rnd)

	cfg := job.Default()
	// the benchmark measures stage throughput, not the gates
	cfg.QualityGate = false
	cfg.MaxTotalLossPct = 100
	cfg.DropMaxRowNullPct = 100
	stages := job.Stages(cfg, lang.NewWhatlang())
	runner := pipeline.NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	out, err := runner.Run(context.Background(), f, stages...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rps := float64(*rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows_in":               *rows,
		"rows_out":              out.Rows(),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rps,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
	}
	if *jsonOut {
		_ = json.NewEncoder(os.Stdout).Encode(summary)
		return
	}
	fmt.Printf("rows %d -> %d in %s (%.0f rows/s)\n", *rows, out.Rows(), elapsed, rps)
}
