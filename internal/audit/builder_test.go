package audit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/presence-audit/internal/model"
)

var sheetHeader = []string{
	"Entreprise", "Ville", "Activité", "Code NAF",
	"Facebook", "LinkedIn", "Instagram", "Site Web",
	"Google My Business", "Pages Jaunes", "YouTube", "TripAdvisor",
}

func sheetRow(values ...string) model.RawRow {
	return model.RowFromRecord(sheetHeader, values)
}

func TestBuild_DropsRowsWithoutName(t *testing.T) {
	rows := []model.RawRow{
		sheetRow("Alpha", "Lyon", "Boulangerie", "1071C", "A"),
		sheetRow("", "Lyon", "Boulangerie"),
		sheetRow("Bravo", "Paris"),
		sheetRow("   ", "Nice"),
		sheetRow("Charlie"),
	}

	records := ProcessData(rows)

	require.Len(t, records, 3)
	assert.Equal(t, "Alpha", records[0].Name)
	assert.Equal(t, "Bravo", records[1].Name)
	assert.Equal(t, "Charlie", records[2].Name)
}

func TestBuild_UnaccentedNameHeaderIsNotACompanyRow(t *testing.T) {
	row := model.RowFromRecord(
		[]string{"Societe", "Secteur d'activité", "Activite"},
		[]string{"Acme", "Hotel", "Boulangerie"},
	)
	assert.Empty(t, ProcessData([]model.RawRow{row}))
}

func TestBuild_EmptyInput(t *testing.T) {
	assert.Empty(t, ProcessData(nil))
	assert.NotNil(t, ProcessData(nil))
	assert.Empty(t, ProcessData([]model.RawRow{sheetRow("", "Lyon")}))
}

func TestBuild_UnresolvedIdentityFields(t *testing.T) {
	row := model.NewRawRow()
	row.Set("Nom", "Solo")

	records := ProcessData([]model.RawRow{row})
	require.Len(t, records, 1)
	c := records[0]
	assert.Equal(t, model.Unresolved, c.City)
	assert.Equal(t, model.Unresolved, c.Activity)
	assert.Equal(t, model.Unresolved, c.NAF)
	assert.Equal(t, 0, c.OverallScore)
	assert.Equal(t, model.TierLow, c.Visibility)
}

func TestBuild_ScoresAndTier(t *testing.T) {
	rows := []model.RawRow{
		sheetRow("Alpha", "Lyon", "Hôtel", "5510Z", "A", "B", "P", "I", "X", "oui", "non", "https://ta.com/x"),
	}

	records := ProcessData(rows)
	require.Len(t, records, 1)
	c := records[0]

	scores := make([]int, len(c.Platforms))
	for i, p := range c.Platforms {
		scores[i] = p.Score
	}
	assert.Equal(t, []int{100, 75, 50, 25, 0, 100, 0, 50}, scores)
	// 400 / 8 = 50
	assert.Equal(t, 50, c.OverallScore)
	assert.Equal(t, model.TierModerate, c.Visibility)
	assert.Equal(t, "Maturité moyenne, manque de régularité.", c.Comment)

	fb := c.Platforms[0]
	assert.Equal(t, model.StatusPresent, fb.Status)
	assert.Equal(t, model.LevelActive, fb.Performance)
	assert.Equal(t, "#1877F2", fb.Color)
	assert.Equal(t, "Facebook", fb.Icon)
	assert.Equal(t, "A", fb.Raw)

	gmb := c.Platforms[4]
	assert.Equal(t, model.StatusAbsent, gmb.Status)
	assert.Equal(t, model.LevelAbsent, gmb.Performance)
}

func TestBuild_OneScorePerPlatformInOrder(t *testing.T) {
	records := ProcessData([]model.RawRow{sheetRow("Alpha"), sheetRow("Bravo", "", "", "", "A")})
	keys := model.PlatformKeys(model.DefaultPlatforms())
	for _, c := range records {
		require.Len(t, c.Platforms, len(keys))
		for i, p := range c.Platforms {
			assert.Equal(t, keys[i], p.Name)
		}
	}
}

func TestBuild_PopulationAveragesSharedAcrossCompanies(t *testing.T) {
	rows := []model.RawRow{
		sheetRow("Alpha", "Lyon", "", "", "A"),
		sheetRow("Bravo", "Lyon", "", "", "P"),
		sheetRow("Charlie", "Lyon", "", "", "X"),
		sheetRow("", "ignored", "", "", "A"),
	}

	records := ProcessData(rows)
	require.Len(t, records, 3)
	for _, c := range records {
		// (100 + 50 + 0) / 3
		assert.InDelta(t, 50.0, c.Platforms[0].Average, 1e-9)
		assert.InDelta(t, 0.0, c.Platforms[1].Average, 1e-9)
	}
}

func TestBuild_OverallScoreIsRoundedMean(t *testing.T) {
	codes := []string{"", "A", "B", "P", "I", "X", "oui", "zzz"}
	var rows []model.RawRow
	for i := range 40 {
		values := []string{"Co", "", "", ""}
		for j := range 8 {
			values = append(values, codes[(i*3+j*5)%len(codes)])
		}
		rows = append(rows, sheetRow(values...))
	}

	for _, c := range ProcessData(rows) {
		sum := 0
		for _, p := range c.Platforms {
			sum += p.Score
		}
		want := int(math.Round(float64(sum) / 8))
		assert.Equal(t, want, c.OverallScore)
		assert.GreaterOrEqual(t, c.OverallScore, 0)
		assert.LessOrEqual(t, c.OverallScore, 100)
	}
}

func TestBuild_RoundsHalfUp(t *testing.T) {
	// 100 / 8 = 12.5
	records := ProcessData([]model.RawRow{sheetRow("Alpha", "", "", "", "A")})
	require.Len(t, records, 1)
	assert.Equal(t, 13, records[0].OverallScore)
}

func TestOverallScore_NoPlatforms(t *testing.T) {
	assert.Equal(t, 0, OverallScore(0, 0))
}
