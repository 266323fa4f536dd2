// Command coupon-import bulk-loads coupon grants from gzip-compressed CSV
// export files (code,userId,percent per line). Each upstream export is
// noisy on its own, so a grant is only trusted when its code appears in
// two or more files. Pass 1 builds one bloom filter per file; pass 2
// re-streams the files and uses the other files' filters to decide which
// codes need exact cross-file resolution, so memory scales with the
// overlap instead of the full corpus.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"math/bits"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
	"github.com/McLovin18/spidey-checkout/internal/repository"
)

const (
	bloomCapacity = 10_000_000
	bloomFPR      = 0.001
	progressEvery = 1_000_000
)

// grant is one parsed import line.
type grant struct {
	code    string
	userID  string
	percent int
}

// fileCandidates holds the grants of a single file whose codes probably
// appear in at least one other file.
type fileCandidates struct {
	grants map[string]grant
	masks  map[string]uint
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing *.csv.gz grant files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("coupon import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("coupon import completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv.gz"))
	if err != nil {
		return errors.Wrap(err, "list grant files")
	}
	if len(files) < 2 {
		return errors.Errorf("need at least two *.csv.gz files in %s for cross-validation, found %d", dataDir, len(files))
	}

	slog.Info("pass 1: building bloom filters", slog.Int("files", len(files)))

	filters, err := buildFilters(ctx, files)
	if err != nil {
		return errors.Wrap(err, "build bloom filters")
	}

	slog.Info("pass 2: resolving cross-file grants")

	grants, err := resolveGrants(ctx, files, filters)
	if err != nil {
		return errors.Wrap(err, "resolve grants")
	}

	slog.Info("validated grants", slog.Int("count", len(grants)))
	if len(grants) == 0 {
		return nil
	}

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	return writeGrants(ctx, pool, grants)
}

// buildFilters creates one bloom filter per file over the normalized code
// column, concurrently. Malformed lines are left for pass 2 to reject.
func buildFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
			var count uint64

			err := streamGzFile(ctx, path, func(line string) error {
				if code := codeOf(line); code != "" {
					filter.AddString(code)
				}
				count++
				if count%progressEvery == 0 {
					slog.Info("pass 1 progress", slog.String("file", path), slog.Uint64("lines", count))
				}
				return nil
			})
			if err != nil {
				return err
			}

			slog.Info("pass 1 complete", slog.String("file", path), slog.Uint64("lines", count))
			filters[i] = filter
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return filters, nil
}

// codeOf extracts and normalizes the code column without parsing the rest
// of the line.
func codeOf(line string) string {
	idx := strings.IndexByte(line, ',')
	if idx < 0 {
		return ""
	}
	return coupon.NormalizeCode(line[:idx])
}

// resolveGrants re-streams every file and keeps only grants whose code
// tests positive in at least one other file's filter. The merged candidate
// set is then confirmed exactly: a grant survives when its code was seen
// in two or more files, with the earliest file's line providing the
// details.
func resolveGrants(ctx context.Context, files []string, filters []*bloom.BloomFilter) ([]grant, error) {
	results := make([]fileCandidates, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			fc := fileCandidates{
				grants: make(map[string]grant),
				masks:  make(map[string]uint),
			}
			fileBit := uint(1) << uint(i)
			var count uint64

			err := streamGzFile(ctx, path, func(line string) error {
				gr, err := parseLine(line)
				if err != nil {
					return errors.Wrapf(err, "file %s", path)
				}

				count++
				if count%progressEvery == 0 {
					slog.Info("pass 2 progress", slog.String("file", path), slog.Uint64("lines", count))
				}

				for j, f := range filters {
					if j == i {
						continue
					}
					if f.TestString(gr.code) {
						if _, dup := fc.grants[gr.code]; !dup {
							fc.grants[gr.code] = gr
						}
						fc.masks[gr.code] |= fileBit
						break
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			slog.Info("pass 2 complete",
				slog.String("file", path),
				slog.Uint64("lines", count),
				slog.Int("candidates", len(fc.grants)),
			)
			results[i] = fc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeCandidates(results), nil
}

// mergeCandidates drops the bloom false positives: only codes whose merged
// mask covers two or more files survive. Conflicting details for the same
// code resolve to the earliest file.
func mergeCandidates(results []fileCandidates) []grant {
	merged := make(map[string]uint)
	winners := make(map[string]grant)
	for _, fc := range results {
		for code, mask := range fc.masks {
			merged[code] |= mask
		}
		for code, gr := range fc.grants {
			if _, ok := winners[code]; !ok {
				winners[code] = gr
			}
		}
	}

	var valid []grant
	for code, mask := range merged {
		if bits.OnesCount(mask) >= 2 {
			valid = append(valid, winners[code])
		}
	}
	return valid
}

// parseLine parses "code,userId,percent". Codes are normalized the same
// way lookups are.
func parseLine(line string) (grant, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return grant{}, errors.Errorf("malformed line %q", line)
	}

	percent, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return grant{}, errors.Wrapf(err, "percent in line %q", line)
	}
	if percent < 1 || percent > 90 {
		return grant{}, errors.Errorf("percent out of range in line %q", line)
	}

	code := coupon.NormalizeCode(parts[0])
	userID := strings.TrimSpace(parts[1])
	if code == "" || userID == "" {
		return grant{}, errors.Errorf("empty code or user in line %q", line)
	}

	return grant{code: code, userID: userID, percent: percent}, nil
}

// streamGzFile calls fn for every non-empty line of a gzip-compressed file.
func streamGzFile(ctx context.Context, path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return errors.Wrapf(scanner.Err(), "scan %s", path)
}

// writeGrants inserts the grants as import-sourced coupons. Codes already
// present in the database are left untouched.
func writeGrants(ctx context.Context, pool *pgxpool.Pool, grants []grant) error {
	slog.Info("writing coupons to database", slog.Int("count", len(grants)))

	const insertGrant = `INSERT INTO coupons (code, user_id, discount_percent, active, source)
		VALUES ($1, $2, $3, TRUE, 'import')
		ON CONFLICT (code) DO NOTHING`

	var written int64
	for i, gr := range grants {
		tag, err := pool.Exec(ctx, insertGrant, gr.code, gr.userID, gr.percent)
		if err != nil {
			return errors.Wrapf(err, "insert coupon %s", gr.code)
		}
		written += tag.RowsAffected()

		if (i+1)%10_000 == 0 || i+1 == len(grants) {
			slog.Info("write progress", slog.Int("processed", i+1), slog.Int64("written", written))
		}
	}

	return nil
}
