package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/model"
	"github.com/sells-group/presence-audit/internal/recommend"
)

// MasteryMessage replaces the action plan when no advice applies.
const MasteryMessage = "Maîtrise totale identifiée"

// CompanyView is everything the audit page shows for one company.
type CompanyView struct {
	Company         model.CompanyRecord    `json:"company" yaml:"company"`
	Recommendations []string               `json:"recommendations" yaml:"recommendations"`
	Sector          audit.SectorComparison `json:"sector" yaml:"sector"`
	ScoreColor      string                 `json:"score_color" yaml:"score_color"`
}

// NewCompanyView assembles the view of company against its population.
func NewCompanyView(records []model.CompanyRecord, company model.CompanyRecord) CompanyView {
	return CompanyView{
		Company:         company,
		Recommendations: recommend.Recommend(company.Platforms),
		Sector:          audit.CompareSector(records, company),
		ScoreColor:      model.ScoreColor(float64(company.OverallScore)),
	}
}

// WriteCompanyMarkdown renders the per-company audit report.
func WriteCompanyMarkdown(w io.Writer, v CompanyView) error {
	var b strings.Builder
	c := v.Company

	fmt.Fprintf(&b, "# Audit de présence numérique : %s\n\n", c.Name)
	fmt.Fprintf(&b, "- Ville : %s\n", c.City)
	fmt.Fprintf(&b, "- Secteur : %s\n", c.Activity)
	fmt.Fprintf(&b, "- Code NAF : %s\n\n", c.NAF)

	b.WriteString("## Résultat général\n\n")
	fmt.Fprintf(&b, "**%d/100** (%s) %s\n\n", c.OverallScore, c.Visibility, c.Comment)

	b.WriteString("## Plateformes\n\n")
	b.WriteString("| Plateforme | Statut | Performance | Score | Moyenne |\n")
	b.WriteString("|---|---|---|---:|---:|\n")
	for _, p := range c.Platforms {
		status := "Absent"
		if p.Present() {
			status = "Présent"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %.0f |\n", p.Name, status, p.Performance, p.Score, p.Average)
	}
	b.WriteString("\n")

	b.WriteString("## Comparaison sectorielle\n\n")
	fmt.Fprintf(&b, "Moyenne du secteur %s : %d/100 (%d entreprises). Écart : %s points.\n\n",
		v.Sector.Sector, v.Sector.Average, v.Sector.Peers, signed(v.Sector.Delta))

	b.WriteString("## Plan d'action stratégique\n\n")
	if len(v.Recommendations) == 0 {
		b.WriteString(MasteryMessage + ".\n")
	} else {
		for i, r := range v.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "report: write company markdown")
	}
	return nil
}

func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
