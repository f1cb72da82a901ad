// Package books bulk-loads a book catalogue from CSV through the same
// validation and service layer as POST /api/books.
package books

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/validation"
)

// Creator is the part of the book service the importer needs.
type Creator interface {
	Create(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error)
}

// Columns is the required CSV header, in any order.
var Columns = []string{"title", "author", "genre", "publicationYear"}

// RowError describes a rejected CSV line.
type RowError struct {
	Line     int      `json:"line"`
	Messages []string `json:"messages"`
}

// Result summarises an import run.
type Result struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Rejected []RowError `json:"rejected"`
}

type Importer struct {
	books   Creator
	workers int
}

func NewImporter(books Creator, workers int) *Importer {
	if workers <= 0 {
		workers = 4
	}
	return &Importer{books: books, workers: workers}
}

// ImportCSV reads a header row followed by one book per line. Lines that fail
// validation are reported in Result.Rejected and never stored; storage
// failures are counted in Result.Failed.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		res      = &Result{Rejected: []RowError{}}
		imported atomic.Int64
		failed   atomic.Int64
	)

	pool := NewWorkerPool(ctx, im.workers, func(err error) {
		failed.Add(1)
		slog.WarnContext(ctx, "book import failed", "error", err)
	})
	pool.Start()

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			pool.Shutdown()
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		bag := rowFieldBag(record, index)
		if errs := validation.ValidateBook(bag); len(errs) > 0 {
			res.Rejected = append(res.Rejected, RowError{Line: line, Messages: errs})
			continue
		}

		year, _ := validation.WholeNumber(bag["publicationYear"])
		req := dto.CreateBookRequest{
			Title:           bag["title"].(string),
			Author:          bag["author"].(string),
			Genre:           bag["genre"].(string),
			PublicationYear: int(year),
		}
		n := line
		ok := pool.Submit(func(ctx context.Context) error {
			if _, err := im.books.Create(ctx, req); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			imported.Add(1)
			return nil
		})
		if !ok {
			break
		}
	}
	pool.Wait()

	res.Imported = int(imported.Load())
	res.Failed = int(failed.Load())
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// rowFieldBag shapes a CSV record like a decoded JSON body. An empty cell is
// treated as absent and a year that is not a number stays a string, so the
// validators reject both.
func rowFieldBag(record []string, index map[string]int) map[string]any {
	bag := make(map[string]any, len(index))
	for col, i := range index {
		if i >= len(record) {
			continue
		}
		v := strings.TrimSpace(record[i])
		if v == "" {
			continue
		}
		bag[col] = v
	}
	if y, ok := bag["publicationYear"].(string); ok {
		if n, err := strconv.ParseFloat(y, 64); err == nil {
			bag["publicationYear"] = n
		}
	}
	return bag
}
