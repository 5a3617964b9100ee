package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/presence-audit/internal/aggregate"
	"github.com/sells-group/presence-audit/internal/audit"
)

// WritePopulationMarkdown renders the dashboard summary of a filtered population.
func WritePopulationMarkdown(w io.Writer, stats aggregate.Stats, f audit.Filter) error {
	var b strings.Builder

	b.WriteString("# Audit de présence numérique : synthèse\n\n")
	fmt.Fprintf(&b, "- Filtres : %s\n", describeFilter(f))
	fmt.Fprintf(&b, "- Mode : %s\n", stats.Mode)
	fmt.Fprintf(&b, "- Entreprises : %d\n", stats.Count)
	if stats.HasData() {
		fmt.Fprintf(&b, "- Score moyen : %.1f\n\n", *stats.Avg)
	} else {
		b.WriteString("- Score moyen : aucune donnée\n\n")
	}

	writeGroups(&b, "Scores par ville", "Ville", stats.ByCity)
	writeGroups(&b, "Scores par secteur", "Secteur", stats.BySector)

	b.WriteString("## Performance par plateforme\n\n")
	b.WriteString("| Plateforme | Score |\n|---|---:|\n")
	for _, p := range stats.PlatformPerf {
		fmt.Fprintf(&b, "| %s | %d |\n", p.Name, p.Score)
	}
	b.WriteString("\n")

	b.WriteString("## Répartition\n\n")
	b.WriteString("| Niveau | Entreprises |\n|---|---:|\n")
	for _, d := range stats.Distribution {
		fmt.Fprintf(&b, "| %s | %d |\n", d.Name, d.Value)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "report: write population markdown")
	}
	return nil
}

func writeGroups(b *strings.Builder, title, label string, groups []aggregate.GroupScore) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(groups) == 0 {
		b.WriteString("Aucune donnée.\n\n")
		return
	}
	fmt.Fprintf(b, "| %s | Score | Entreprises |\n|---|---:|---:|\n", label)
	for _, g := range groups {
		fmt.Fprintf(b, "| %s | %d | %d |\n", mdCell(g.Name), g.Score, g.Count)
	}
	b.WriteString("\n")
}

func describeFilter(f audit.Filter) string {
	if !f.Active() {
		return "aucun"
	}
	var parts []string
	if f.City != "" {
		parts = append(parts, "ville = "+f.City)
	}
	if f.Sector != "" {
		parts = append(parts, "secteur = "+f.Sector)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("recherche = %q", f.Search))
	}
	return strings.Join(parts, ", ")
}
