package engine

import (
	"fmt"
	"strings"
)

// Summary renders a recommendation as plain text for the CLI and the summary
// endpoint.
func Summary(rec *Recommendation) string {
	if rec.Error != "" {
		return rec.Error
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Yoga Therapy Recommendations for: %s\n\n", strings.Join(rec.Diseases, ", "))

	if len(rec.Modules) > 0 {
		b.WriteString("MODULES:\n")
		for _, m := range rec.Modules {
			fmt.Fprintf(&b, "- %s: Developed by %s\n", m.Disease, m.DevelopedBy)
		}
		b.WriteString("\n")
	}

	b.WriteString("RECOMMENDED PRACTICES:\n\n")
	for _, kosha := range rec.Koshas {
		fmt.Fprintf(&b, "%s KOSHA:\n", strings.ToUpper(kosha.Kosha))
		for _, category := range kosha.Categories {
			fmt.Fprintf(&b, "  %s:\n", category.Category)
			for _, sub := range category.SubCategories {
				if sub.SubCategory != "general" {
					fmt.Fprintf(&b, "    %s:\n", titleWords(strings.ReplaceAll(sub.SubCategory, "_", " ")))
				}
				for _, p := range sub.Practices {
					name := p.EnglishName
					if p.SanskritName != "" {
						name = fmt.Sprintf("%s (%s)", p.SanskritName, p.EnglishName)
					}
					fmt.Fprintf(&b, "      - %s", name)

					var details []string
					if p.Rounds > 0 {
						details = append(details, fmt.Sprintf("%d rounds", p.Rounds))
					}
					if p.TimeMinutes > 0 {
						details = append(details, fmt.Sprintf("%g min", p.TimeMinutes))
					}
					if len(details) > 0 {
						fmt.Fprintf(&b, " - %s", strings.Join(details, ", "))
					}
					if p.Citation != nil {
						fmt.Fprintf(&b, " [Cited: %s]", p.Citation.Text)
					}
					b.WriteString("\n")
				}
			}
			b.WriteString("\n")
		}
	}

	if len(rec.Warnings) > 0 {
		b.WriteString("NOTES:\n")
		for _, w := range rec.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
