// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// moneyFields are rendered with thousands separators and two decimals.
var moneyFields = map[string]bool{
	"payment":              true,
	"asking_price":         true,
	"down_payment":         true,
	"minimum_down_payment": true,
	"insurance":            true,
	"loan_total":           true,
	"principal":            true,
	"mortgage_amount":      true,
}

func sortedKeys(fields map[string]float64) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, title string, fields map[string]float64) error {
	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "--- %s ---\n", title); err != nil {
		return err
	}
	for _, key := range sortedKeys(fields) {
		var err error
		if moneyFields[key] {
			_, err = p.Fprintf(w, "%-22s | $%.2f\n", key, fields[key])
		} else {
			_, err = p.Fprintf(w, "%-22s | %v\n", key, fields[key])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat writes one header row and one value row.
func CsvFormat(w io.Writer, fields map[string]float64) error {
	keys := sortedKeys(fields)
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = strconv.FormatFloat(fields[key], 'f', -1, 64)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(keys); err != nil {
		return err
	}
	if err := cw.Write(values); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
