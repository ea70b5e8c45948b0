package knowledge

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Parse reads a flat text source of condition records: blocks of "Key: Value"
// lines separated by blank lines. A block without a Condition key is returned
// as a Skipped entry. Record order follows source order; search tie-breaking
// depends on that.
func Parse(r io.Reader) ([]Record, []Skipped) {
	var (
		records []Record
		skipped []Skipped
		block   []string
		lineNo  int
		start   int
	)

	flush := func() {
		if len(block) == 0 {
			return
		}
		rec, reason := parseBlock(block)
		if reason == "" {
			records = append(records, rec)
		} else {
			skipped = append(skipped, Skipped{Line: start, Reason: reason})
		}
		block = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if len(block) == 0 {
			start = lineNo
		}
		block = append(block, line)
	}
	flush()

	return records, skipped
}

// Load reads the record source at path. A missing file is not an error: the
// system stays usable in degraded mode with an empty knowledge base.
func Load(path string) ([]Record, []Skipped, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	records, skipped := Parse(f)
	return records, skipped, nil
}

// parseBlock returns the record and an empty reason, or the reason the block
// was rejected. A present but empty Condition is rejected too: it could never
// be embedded or matched.
func parseBlock(lines []string) (Record, string) {
	var rec Record
	hasKey := false
	for _, line := range lines {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Condition":
			rec.Condition = value
			hasKey = true
		case "Generic Name":
			rec.GenericName = value
		case "OTC Brand Names":
			rec.BrandNames = value
		case "Precaution Measures":
			rec.Precautions = value
		case "Dosages":
			rec.Dosage = value
		case "Duration":
			rec.Duration = value
		case "Age Suitability":
			rec.AgeSuitability = value
		}
	}
	if !hasKey {
		return rec, "missing Condition key"
	}
	if rec.Condition == "" {
		return rec, "empty Condition value"
	}
	return rec, ""
}
