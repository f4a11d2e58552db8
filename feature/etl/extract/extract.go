package extract

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"student-etl/core/utils"
	"student-etl/feature/etl/models"
)

// Read loads the source described by the profile and returns its raw
// records plus the raw record count. A missing file or content that does
// not parse into the expected shape is a source error, fatal to the run.
func Read(profile models.SourceProfile) ([]models.RawRecord, int, error) {
	f, err := os.Open(profile.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", models.ErrSource, profile.Path, err)
	}
	defer f.Close()

	var records []models.RawRecord
	switch profile.Kind {
	case models.KindTabular:
		records, err = readTabular(f)
	case models.KindRecord:
		records, err = readRecords(f)
	case models.KindMarkup:
		records, err = readMarkup(f)
	default:
		err = fmt.Errorf("unknown source kind %q", profile.Kind)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", models.ErrSource, profile.Path, err)
	}

	return records, len(records), nil
}

// readTabular parses a CSV file with a header row. Every data row becomes
// one record mapping header names to cell values.
func readTabular(r io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("tabular source has no header row")
	}

	header := rows[0]
	records := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			fields[strings.TrimSpace(name)] = row[i]
		}
		records = append(records, models.RawRecord{Kind: models.KindTabular, Fields: fields})
	}

	return records, nil
}

// readRecords parses a JSON array of flat objects. Null values are
// treated as absent fields; everything else is flattened to a string.
func readRecords(r io.Reader) ([]models.RawRecord, error) {
	var items []map[string]any
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, err
	}

	records := make([]models.RawRecord, 0, len(items))
	for _, item := range items {
		fields := make(map[string]string, len(item))
		for name, value := range item {
			if value == nil {
				continue
			}
			fields[name] = utils.ToString(value)
		}
		records = append(records, models.RawRecord{Kind: models.KindRecord, Fields: fields})
	}

	return records, nil
}

// readMarkup parses an XML document where every child of the root element
// is one record and its child elements are the record's fields.
func readMarkup(r io.Reader) ([]models.RawRecord, error) {
	dec := xml.NewDecoder(r)

	var records []models.RawRecord
	var current map[string]string
	var fieldName string
	var text strings.Builder
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 2:
				current = make(map[string]string)
			case 3:
				fieldName = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 3 {
				text.Write(t)
			}
		case xml.EndElement:
			switch depth {
			case 3:
				if current != nil {
					current[fieldName] = strings.TrimSpace(text.String())
				}
			case 2:
				if current != nil {
					records = append(records, models.RawRecord{Kind: models.KindMarkup, Fields: current})
					current = nil
				}
			}
			depth--
		}
	}

	return records, nil
}
