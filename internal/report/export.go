package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/presence-audit/internal/model"
)

// flatRecord is the one-line-per-company export shape.
type flatRecord struct {
	Name         string `csv:"entreprise"`
	City         string `csv:"ville"`
	Activity     string `csv:"activite"`
	NAF          string `csv:"code_naf"`
	OverallScore int    `csv:"score_global"`
	Visibility   string `csv:"visibilite"`
	Comment      string `csv:"commentaire"`
	Facebook     int    `csv:"facebook"`
	LinkedIn     int    `csv:"linkedin"`
	Instagram    int    `csv:"instagram"`
	Website      int    `csv:"site_web"`
	GMB          int    `csv:"google_my_business"`
	PagesJaunes  int    `csv:"pages_jaunes"`
	YouTube      int    `csv:"youtube"`
	TripAdvisor  int    `csv:"tripadvisor"`
}

// textColumns are the non-numeric export columns.
var textColumns = map[string]bool{
	"entreprise": true, "ville": true, "activite": true,
	"code_naf": true, "visibilite": true, "commentaire": true,
}

func flatten(c model.CompanyRecord) flatRecord {
	score := func(key string) int {
		p, _ := c.Platform(key)
		return p.Score
	}
	return flatRecord{
		Name:         c.Name,
		City:         c.City,
		Activity:     c.Activity,
		NAF:          c.NAF,
		OverallScore: c.OverallScore,
		Visibility:   string(c.Visibility),
		Comment:      c.Comment,
		Facebook:     score(model.PlatformFacebook),
		LinkedIn:     score(model.PlatformLinkedIn),
		Instagram:    score(model.PlatformInstagram),
		Website:      score(model.PlatformWebsite),
		GMB:          score(model.PlatformGMB),
		PagesJaunes:  score(model.PlatformPagesJaunes),
		YouTube:      score(model.PlatformYouTube),
		TripAdvisor:  score(model.PlatformTripAdvisor),
	}
}

func flattenAll(records []model.CompanyRecord) []flatRecord {
	out := make([]flatRecord, len(records))
	for i, c := range records {
		out[i] = flatten(c)
	}
	return out
}

// encodeFlat writes the header and one line per record to a csvutil writer.
func encodeFlat(w csvutil.Writer, records []model.CompanyRecord) error {
	enc := csvutil.NewEncoder(w)
	if err := enc.EncodeHeader(flatRecord{}); err != nil {
		return eris.Wrap(err, "report: encode header")
	}
	for _, r := range flattenAll(records) {
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "report: encode record")
		}
	}
	return nil
}

// Export writes records in a machine-readable format. Markdown writes one
// summary table.
func Export(w io.Writer, f Format, records []model.CompanyRecord) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(records), "report: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return eris.Wrap(enc.Close(), "report: close yaml")
	case FormatMarkdown:
		return writeMarkdownTable(w, records)
	default:
		return eris.Errorf("report: unsupported export format %q", f)
	}
}

func writeCSV(w io.Writer, records []model.CompanyRecord) error {
	cw := csv.NewWriter(w)
	if err := encodeFlat(cw, records); err != nil {
		return err
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

// rowCollector buffers csvutil output for the XLSX writer.
type rowCollector struct {
	rows [][]string
}

func (c *rowCollector) Write(record []string) error {
	c.rows = append(c.rows, append([]string(nil), record...))
	return nil
}

func writeXLSX(w io.Writer, records []model.CompanyRecord) error {
	var rc rowCollector
	if err := encodeFlat(&rc, records); err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Audit")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}
	header := rc.rows[0]
	for i, rec := range rc.rows {
		row := sheet.AddRow()
		for j, v := range rec {
			cell := row.AddCell()
			if i > 0 && !textColumns[header[j]] {
				if n, convErr := strconv.Atoi(v); convErr == nil {
					cell.SetInt(n)
					continue
				}
			}
			cell.SetString(v)
		}
	}

	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "report: write xlsx")
	}
	return nil
}

func writeMarkdownTable(w io.Writer, records []model.CompanyRecord) error {
	if _, err := io.WriteString(w, "| Entreprise | Ville | Secteur | Score | Visibilité |\n|---|---|---|---:|---|\n"); err != nil {
		return eris.Wrap(err, "report: write markdown")
	}
	for _, c := range records {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %d | %s |\n", mdCell(c.Name), mdCell(c.City), mdCell(c.Activity), c.OverallScore, c.Visibility); err != nil {
			return eris.Wrap(err, "report: write markdown")
		}
	}
	return nil
}
