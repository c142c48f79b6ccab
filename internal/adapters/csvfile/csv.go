// Package csvfile reads cleaned review exports and writes labeled ones.
// Header names are matched case-insensitively and a couple of common
// aliases are accepted, so exports from different cleaning runs load
// without editing.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bank_reviews/internal/domain"
)

var headerAliases = map[string]string{
	"review":      "review_text",
	"review_text": "review_text",
	"text":        "review_text",
	"rating":      "rating",
	"score":       "rating",
	"date":        "date",
	"review_date": "date",
	"bank":        "bank",
	"bank_name":   "bank",
	"source":      "source",
	"review_id":   "review_id",
	"id":          "review_id",
}

// ReadReviews loads reviews from a CSV export. Required columns are
// review_text, rating, date, and bank; source and review_id are optional.
// Rows with an unparseable rating fail the load rather than being dropped
// silently; cleaning belongs to the pipeline, not the file reader.
func ReadReviews(path string) ([]domain.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readReviews(f)
}

func readReviews(r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		if name, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	for _, required := range []string{"review_text", "rating", "date", "bank"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.Review
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rv := domain.Review{
			ReviewText: field(row, "review_text"),
			Date:       field(row, "date"),
			Bank:       field(row, "bank"),
			Source:     field(row, "source"),
		}
		if rv.Source == "" {
			rv.Source = "Google Play"
		}
		if s := field(row, "rating"); s != "" {
			// exports sometimes carry ratings as floats ("4.0")
			fl, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad rating %q", line, s)
			}
			rv.Rating = int(fl)
		}
		if s := field(row, "review_id"); s != "" {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad review_id %q", line, s)
			}
			rv.ReviewID = id
		}
		out = append(out, rv)
	}
	return out, nil
}

// WriteLabeled writes the labeled collection with the derived columns
// appended after the originals.
func WriteLabeled(path string, rs []domain.Review) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeLabeled(f, rs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeLabeled(w io.Writer, rs []domain.Review) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"review_id", "review_text", "rating", "date", "bank", "source",
		"sentiment_label", "sentiment_score", "theme",
	}); err != nil {
		return err
	}
	for _, rv := range rs {
		row := []string{
			strconv.FormatInt(rv.ReviewID, 10),
			rv.ReviewText,
			strconv.Itoa(rv.Rating),
			rv.Date,
			rv.Bank,
			rv.Source,
			rv.SentimentLabel,
			strconv.FormatFloat(rv.SentimentScore, 'f', 4, 64),
			rv.Theme,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
