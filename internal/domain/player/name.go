package player

import (
	"fmt"
	"strings"
	"unicode"
)

var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

var defenseSuffixes = map[string]struct{}{
	"dst": {}, "d/st": {}, "def": {}, "defense": {},
}

// NormalizeName produces the comparison form of a player name: lowercase,
// generational suffix removed, letters and single spaces only.
func NormalizeName(name string) string {
	return strings.Join(nameTokens(name, false), " ")
}

// JoinKey is the key used to join roster names against projection rows.
// Unlike NormalizeName it keeps digits and joins tokens with underscores.
func JoinKey(name string) string {
	return strings.Join(nameTokens(name, true), "_")
}

// RecordID builds the default record identifier "{name}#{position}".
func RecordID(name string, pos Position) string {
	return fmt.Sprintf("%s#%s", strings.Join(strings.Fields(name), " "), pos)
}

// IDCandidates lists record ids worth probing for a bare player name, in
// priority order and without duplicates.
func IDCandidates(name string) []string {
	display := strings.Join(strings.Fields(name), " ")
	if display == "" {
		return nil
	}

	base := JoinKey(name)
	seen := make(map[string]struct{})
	out := make([]string, 0, 2*len(AllPositions)+2)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, pos := range AllPositions {
		add(RecordID(display, pos))
	}
	for _, pos := range []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK} {
		add(base + "_" + strings.ToLower(string(pos)))
	}
	add(base)

	fields := strings.Fields(strings.ToLower(display))
	if len(fields) > 1 {
		if _, ok := defenseSuffixes[fields[len(fields)-1]]; ok {
			add(strings.Join(fields[:len(fields)-1], "_") + "_dst")
		}
	}
	return out
}

// BestMatch picks the record whose name matches name best. An exact
// normalized match beats a partial one; ties prefer records with more of
// team and position populated, then input order.
func BestMatch(name string, records []Record) (Record, bool) {
	target := NormalizeName(name)
	if target == "" {
		return Record{}, false
	}

	bestIdx, bestScore := -1, -1
	for i, rec := range records {
		candidate := NormalizeName(rec.Name)
		if candidate == "" {
			continue
		}

		score := 0
		switch {
		case candidate == target:
			score = 10
		case strings.Contains(candidate, target) || strings.Contains(target, candidate):
			score = 5
		default:
			continue
		}
		if strings.TrimSpace(rec.Team) != "" {
			score++
		}
		if rec.Position != "" {
			score++
		}

		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return Record{}, false
	}
	return records[bestIdx], true
}

func nameTokens(name string, keepDigits bool) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case keepDigits && unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 1 {
		if _, ok := nameSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}
