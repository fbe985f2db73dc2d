package job

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// englishAlways stands in for the real classifier so the run is fast
// and deterministic.
type englishAlways struct{}

func (englishAlways) Classify(string) (string, error) { return "eng", nil }

const testCSV = `product_id,user_id,review_title,review_content,about_product,rating,actual_price,discounted_price,discount_percentage,product_link
P1,U1,Great Cable,This cable works great. see http://spam.example,Braided USB cable,4.5,"₹1,099",₹499,55%,https://x.co/p1
P1,U1,Great Cable,This cable works great.,Braided USB cable,4.5,"₹1,099",₹499,55%,https://x.co/p1
P2,U2,Bad Purchase,Totally disappointed with this purchase.,Cheap USB cable,2.0,₹500,₹400,20%,https://x.co/p2
P3,U3,No Rating,Never actually rated this one.,USB cable,|,₹300,₹200,33%,https://x.co/p3
`

func runTestJob(t *testing.T, input string) (Config, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "reviews.csv")
	if err := os.WriteFile(in, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.InputPath = in
	cfg.OutputDir = filepath.Join(dir, "out")

	opts := Options{
		Classifier: englishAlways{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := Run(context.Background(), cfg, opts); err != nil {
		t.Fatal(err)
	}
	return cfg, filepath.Join(cfg.OutputDir, cfg.OutputName())
}

func TestRunEndToEnd(t *testing.T) {
	_, out := runTestJob(t, testCSV)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), b)
	}
	if lines[0] != "product_id,review_content_en_clean,sentiment" {
		t.Fatalf("header: %q", lines[0])
	}
	// duplicate P1 review collapsed, sentinel-rated P3 filtered
	if lines[1] != "P1,this cable works great,positive" {
		t.Fatalf("row 1: %q", lines[1])
	}
	if lines[2] != "P2,totally disappointed with this purchase,negative" {
		t.Fatalf("row 2: %q", lines[2])
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg, out := runTestJob(t, testCSV)
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{
		Classifier: englishAlways{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := Run(context.Background(), cfg, opts); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("re-run produced different bytes")
	}
}

func TestRunHeaderOnlyInput(t *testing.T) {
	header := strings.SplitN(testCSV, "\n", 2)[0] + "\n"
	_, out := runTestJob(t, header)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got:\n%s", b)
	}
}

func TestRunJSONLOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "reviews.csv")
	if err := os.WriteFile(in, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.InputPath = in
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.OutputFormat = "jsonl"
	opts := Options{
		Classifier: englishAlways{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := Run(context.Background(), cfg, opts); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "clean_training_dataset.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"sentiment":"positive"`) {
		t.Fatalf("got %q", lines[0])
	}
}

func TestConfigNames(t *testing.T) {
	cfg := Default()
	if cfg.EnglishColumn() != "review_content_en" {
		t.Fatal(cfg.EnglishColumn())
	}
	if cfg.CleanTextColumn() != "review_content_en_clean" {
		t.Fatal(cfg.CleanTextColumn())
	}
	cfg.OutputFormat = "parquet"
	if cfg.OutputName() != "clean_training_dataset.parquet" {
		t.Fatal(cfg.OutputName())
	}
}
