package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/presence-audit/internal/aggregate"
	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/fetcher"
	"github.com/sells-group/presence-audit/internal/model"
)

var sheetHeader = []string{
	"Entreprise", "Ville", "Activité", "Code NAF",
	"Facebook", "LinkedIn", "Instagram", "Site Web",
	"Google My Business", "Pages Jaunes", "YouTube", "TripAdvisor",
}

// fixture returns Alpha (every platform excellent) and Bravo (only a weak
// Google My Business listing), both bakeries in Lyon.
func fixture(t *testing.T) []model.CompanyRecord {
	t.Helper()
	rows := []model.RawRow{
		model.RowFromRecord(sheetHeader, []string{"Alpha", "Lyon", "Boulangerie", "1071C", "A", "A", "A", "A", "A", "A", "A", "A"}),
		model.RowFromRecord(sheetHeader, []string{"Bravo", "Lyon", "Boulangerie", "1071C", "", "", "", "", "I"}),
	}
	records := audit.ProcessData(rows)
	require.Len(t, records, 2)
	return records
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"CSV":      FormatCSV,
		"xlsx":     FormatXLSX,
		"json":     FormatJSON,
		"yml":      FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestDefaultFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Audit_Alpha.md", DefaultFilename("Alpha", FormatMarkdown))
	assert.Equal(t, "Audit_DIGICITY.xlsx", DefaultFilename("", FormatXLSX))
	assert.Equal(t, "Audit_A_B.csv", DefaultFilename("A/B", FormatCSV))
}

func TestWriteCompanyMarkdown_ActionPlan(t *testing.T) {
	records := fixture(t)
	view := NewCompanyView(records, records[1])

	require.Len(t, view.Recommendations, 4)
	assert.Equal(t, 52, view.Sector.Average)
	assert.Equal(t, -49, view.Sector.Delta)
	assert.Equal(t, "#ef4444", view.ScoreColor)

	var buf bytes.Buffer
	require.NoError(t, WriteCompanyMarkdown(&buf, view))
	out := buf.String()

	assert.Contains(t, out, "# Audit de présence numérique : Bravo")
	assert.Contains(t, out, "**3/100** (Faible) Présence numérique insuffisante.")
	assert.Contains(t, out, "| Facebook | Absent | Absent | 0 | 50 |")
	assert.Contains(t, out, "| Google My Business | Présent | Passif | 25 | 62 |")
	assert.Contains(t, out, "Moyenne du secteur Boulangerie : 52/100 (2 entreprises). Écart : -49 points.")
	assert.Contains(t, out, "1. Facebook : Créer une page professionnelle")
	assert.Contains(t, out, "4. GMB : Réclamer la propriété")
	assert.NotContains(t, out, MasteryMessage)
}

func TestWriteCompanyMarkdown_Mastery(t *testing.T) {
	records := fixture(t)
	view := NewCompanyView(records, records[0])

	assert.NotNil(t, view.Recommendations)
	assert.Empty(t, view.Recommendations)

	var buf bytes.Buffer
	require.NoError(t, WriteCompanyMarkdown(&buf, view))
	out := buf.String()
	assert.Contains(t, out, MasteryMessage+".")
	assert.Contains(t, out, "Écart : +48 points.")
	assert.Contains(t, out, "(Dynamique)")
}

func TestWritePopulationMarkdown(t *testing.T) {
	records := fixture(t)
	f := audit.Filter{City: "Lyon"}
	stats := aggregate.Aggregate(aggregate.ModePerformance, model.DefaultPlatforms(), records, f.Apply(records))

	var buf bytes.Buffer
	require.NoError(t, WritePopulationMarkdown(&buf, stats, f))
	out := buf.String()

	assert.Contains(t, out, "- Filtres : ville = Lyon")
	assert.Contains(t, out, "- Entreprises : 2")
	assert.Contains(t, out, "- Score moyen : 51.5")
	assert.Contains(t, out, "| Lyon | 52 | 2 |")
	assert.Contains(t, out, "| Google My Business | 63 |")
	assert.Contains(t, out, "| Excellent | 1 |")
	assert.Contains(t, out, "| Faible | 1 |")
}

func TestWritePopulationMarkdown_NoData(t *testing.T) {
	stats := aggregate.Aggregate(aggregate.ModePresence, model.DefaultPlatforms(), nil, nil)

	var buf bytes.Buffer
	require.NoError(t, WritePopulationMarkdown(&buf, stats, audit.Filter{}))
	out := buf.String()
	assert.Contains(t, out, "- Filtres : aucun")
	assert.Contains(t, out, "- Score moyen : aucune donnée")
	assert.Contains(t, out, "Aucune donnée.")
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatCSV, fixture(t)))

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, []string{
		"entreprise", "ville", "activite", "code_naf", "score_global", "visibilite", "commentaire",
		"facebook", "linkedin", "instagram", "site_web", "google_my_business", "pages_jaunes", "youtube", "tripadvisor",
	}, lines[0])
	assert.Equal(t, "Alpha", lines[1][0])
	assert.Equal(t, "100", lines[1][4])
	assert.Equal(t, "Bravo", lines[2][0])
	assert.Equal(t, "25", lines[2][11])
}

func TestExport_CSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatCSV, nil))

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "entreprise", lines[0][0])
}

func TestExport_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatXLSX, fixture(t)))

	table, err := fetcher.ReadXLSXBytes(buf.Bytes(), fetcher.XLSXOptions{SheetName: "Audit"})
	require.NoError(t, err)
	assert.Equal(t, "entreprise", table.Header[0])
	require.Len(t, table.Records, 2)
	assert.Equal(t, "Bravo", table.Records[1][0])
	assert.Equal(t, "3", table.Records[1][4])
}

func TestExport_JSONAndYAML(t *testing.T) {
	records := fixture(t)

	var js bytes.Buffer
	require.NoError(t, Export(&js, FormatJSON, records))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Dynamique", decoded[0]["visibility_level"])

	var ym bytes.Buffer
	require.NoError(t, Export(&ym, FormatYAML, records))
	var back []model.CompanyRecord
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, records[1].Name, back[1].Name)
	assert.Equal(t, records[1].Platforms, back[1].Platforms)
}

func TestExport_MarkdownTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatMarkdown, fixture(t)))
	assert.Contains(t, buf.String(), "| Alpha | Lyon | Boulangerie | 100 | Dynamique |")
}

func TestExport_MarkdownTableEscapesCells(t *testing.T) {
	records := []model.CompanyRecord{{
		Name:       "Pizza | Pasta",
		City:       "Lyon\nEst",
		Activity:   "Restauration",
		Visibility: model.TierLow,
	}}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatMarkdown, records))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `| Pizza \| Pasta | Lyon Est | Restauration | 0 | Faible |`, lines[2])
}

func TestWritePopulationMarkdown_EscapesGroupNames(t *testing.T) {
	stats := aggregate.Stats{
		Mode:   aggregate.ModePerformance,
		ByCity: []aggregate.GroupScore{{Name: "Aix|Nord", Score: 40, Count: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePopulationMarkdown(&buf, stats, audit.Filter{}))
	assert.Contains(t, buf.String(), `| Aix\|Nord | 40 | 1 |`)
}

func TestExport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Export(&buf, Format("pdf"), nil))
}
