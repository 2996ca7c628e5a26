package ai

import "strings"

const (
	namePrefix   = "- Task Name:"
	reasonPrefix = "- Reason:"
)

// Recommendation is one parsed block of the model's reply.
type Recommendation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ParseRecommendations scans raw for repeated blocks of the form
//
//	- Task Name: <text>
//	- Reason: <text>
//
// where the reason may continue over following lines up to a blank line,
// the next block, or end of input. Spans that do not match are skipped
// silently and counted; skipped is returned for observability. Empty or
// fully unmatched input yields an empty result, which is a valid outcome,
// not an error. Block order is preserved and no maximum is imposed.
func ParseRecommendations(raw string) (recs []Recommendation, skipped int) {
	lines := strings.Split(raw, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		name, ok := strings.CutPrefix(line, namePrefix)
		if !ok {
			// Unmatched span: consume up to the next blank line or block.
			skipped++
			for i < len(lines) {
				l := strings.TrimSpace(lines[i])
				if l == "" || strings.HasPrefix(l, namePrefix) {
					break
				}
				i++
			}
			continue
		}
		i++

		if i >= len(lines) {
			skipped++ // name without a reason line
			break
		}
		reason, ok := strings.CutPrefix(strings.TrimSpace(lines[i]), reasonPrefix)
		if !ok {
			// Orphaned name: consume the rest of the block too, so the
			// whole malformed span counts once.
			skipped++
			for i < len(lines) {
				l := strings.TrimSpace(lines[i])
				if l == "" || strings.HasPrefix(l, namePrefix) {
					break
				}
				i++
			}
			continue
		}
		i++

		parts := []string{strings.TrimSpace(reason)}
		for i < len(lines) {
			cont := strings.TrimSpace(lines[i])
			if cont == "" || strings.HasPrefix(cont, namePrefix) {
				break
			}
			parts = append(parts, cont)
			i++
		}

		recs = append(recs, Recommendation{
			Name:   strings.TrimSpace(name),
			Reason: strings.Join(parts, "\n"),
		})
	}

	return recs, skipped
}
