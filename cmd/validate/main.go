// Command validate audits the pothole collection in Firestore. It streams
// every document through the same normalization the API uses and reports
// documents the API would drop, documents that would blank the whole API
// response, and coordinates the mapping client cannot plot.
//
// Usage:
//
//	FIREBASE_CREDENTIALS="$(cat key.json)" go run ./cmd/validate \
//	  -collection potholes_database \
//	  -timeout 1m
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"

	firestoreadapter "github.com/couchcryptid/pothole-data-api/internal/adapter/firestore"
	"github.com/couchcryptid/pothole-data-api/internal/config"
	"github.com/couchcryptid/pothole-data-api/internal/domain"
)

// maxListed caps per-phase error lines so a bad collection stays readable.
const maxListed = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name    string
	errors  []string
	omitted int
}

func (p *phase) errorf(format string, args ...any) {
	if len(p.errors) >= maxListed {
		p.omitted++
		return
	}
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	_ = godotenv.Load()

	collection := flag.String("collection", "", "collection to audit (defaults to FIRESTORE_COLLECTION)")
	timeout := flag.Duration("timeout", time.Minute, "deadline for reading the whole collection")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}
	if *collection != "" {
		cfg.FirestoreCollection = *collection
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := firestoreadapter.NewClient(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	source := firestoreadapter.NewSource(client, cfg.FirestoreCollection)
	code := run(ctx, source, cfg.FirestoreCollection, os.Stdout)
	client.Close() //nolint:errcheck // exiting either way
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, source domain.DocumentSource, collection string, out io.Writer) int {
	fmt.Fprintln(out, "=== Pothole Collection Audit ===")
	fmt.Fprintf(out, "collection: %s\n\n", collection)

	docs, err := readAll(ctx, source)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read collection: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "documents: %d\n\n", len(docs))

	records, phases := audit(docs)

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Fprintf(out, "[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Fprintf(out, "    - %s\n", e)
		}
		if p.omitted > 0 {
			fmt.Fprintf(out, "    ... and %d more\n", p.omitted)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "servable records: %d of %d\n", len(records), len(docs))
	printSizes(out, records)

	if !allPassed {
		return 1
	}
	return 0
}

func readAll(ctx context.Context, source domain.DocumentSource) ([]domain.Document, error) {
	stream := source.Stream(ctx)
	defer stream.Stop()

	var docs []domain.Document
	for {
		doc, err := stream.Next()
		if errors.Is(err, domain.ErrDone) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

// audit classifies every document and returns the records the API would
// serve if the collection had no coercion failures.
func audit(docs []domain.Document) ([]domain.PotholeRecord, []*phase) {
	completeness := &phase{name: "Coordinate completeness (documents the API drops)"}
	coercion := &phase{name: "Field coercion (any failure empties the API response)"}
	bounds := &phase{name: "Coordinate bounds (finite, WGS-84 range)"}

	var records []domain.PotholeRecord
	for _, doc := range docs {
		rec, err := domain.NormalizePothole(doc)

		var fe *domain.FieldError
		switch {
		case errors.Is(err, domain.ErrIncomplete):
			completeness.errorf("%s: %v", doc.ID, err)
			continue
		case errors.As(err, &fe):
			coercion.errorf("%s: %v", doc.ID, fe)
			continue
		case err != nil:
			coercion.errorf("%s: %v", doc.ID, err)
			continue
		}

		if msg := checkBounds(rec); msg != "" {
			bounds.errorf("%s: %s", doc.ID, msg)
		}
		records = append(records, rec)
	}

	return records, []*phase{completeness, coercion, bounds}
}

func checkBounds(rec domain.PotholeRecord) string {
	switch {
	case math.IsNaN(rec.Latitude) || math.IsInf(rec.Latitude, 0):
		return fmt.Sprintf("latitude %v is not finite", rec.Latitude)
	case math.IsNaN(rec.Longitude) || math.IsInf(rec.Longitude, 0):
		return fmt.Sprintf("longitude %v is not finite", rec.Longitude)
	case rec.Latitude < -90 || rec.Latitude > 90:
		return fmt.Sprintf("latitude %g outside [-90, 90]", rec.Latitude)
	case rec.Longitude < -180 || rec.Longitude > 180:
		return fmt.Sprintf("longitude %g outside [-180, 180]", rec.Longitude)
	}
	return ""
}

func printSizes(out io.Writer, records []domain.PotholeRecord) {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Size]++
	}
	sizes := make([]string, 0, len(counts))
	for s := range counts {
		sizes = append(sizes, s)
	}
	sort.Strings(sizes)

	fmt.Fprintln(out, "size labels:")
	for _, s := range sizes {
		label := s
		if label == "" {
			label = "(empty)"
		}
		fmt.Fprintf(out, "    %-12s %d\n", label, counts[s])
	}
}
