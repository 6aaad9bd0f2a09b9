// Package recommend ranks unsolved questions for a learner by how
// under-practiced their tags and difficulty tier are. The scorer is a pure
// function of its inputs plus a per-call random tiebreak; it holds no state
// and is safe for unlimited concurrent use.
package recommend

import (
	"math/rand"
	"sort"
	"strings"

	"algoprep/internal/domain/model"
)

// MaxResults caps how many questions a single recommendation returns.
const MaxResults = 5

// SplitTags normalizes a comma-separated tag field: each tag is trimmed and
// lowercased, empty entries are dropped. The stored tag string is never
// rewritten; this is the scoring-side view only.
func SplitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Rank orders candidates so the least-practiced land first and returns at
// most MaxResults of them.
//
// history holds the question record behind each solved submission, with
// multiplicity: solving the same question twice counts its tags twice.
// Candidates are sorted ascending by (tagScore, difficultyScore, random):
// a question whose tags the learner has barely touched sorts before one
// covered many times over; ties break uniformly at random, drawn fresh per
// call, to diversify repeat requests.
func Rank(history []model.Question, candidates []model.Question) []model.Question {
	tagCount := make(map[string]int)
	diffCount := make(map[model.QuestionDifficulty]int)
	for _, q := range history {
		for _, tag := range SplitTags(q.Tags) {
			tagCount[tag]++
		}
		diffCount[q.Difficulty]++
	}

	// Never-seen tags score at the floor: the minimum observed frequency,
	// or 0 for a learner with no solved history.
	tagFloor := 0
	first := true
	for _, c := range tagCount {
		if first || c < tagFloor {
			tagFloor = c
			first = false
		}
	}

	type scored struct {
		q         model.Question
		tagScore  int
		diffScore int
		jitter    float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, q := range candidates {
		tagScore := tagFloor
		if tags := SplitTags(q.Tags); len(tags) > 0 {
			tagScore = 0
			for _, tag := range tags {
				if c, ok := tagCount[tag]; ok {
					tagScore += c
				} else {
					tagScore += tagFloor
				}
			}
		}
		ranked = append(ranked, scored{
			q:         q,
			tagScore:  tagScore,
			diffScore: diffCount[q.Difficulty],
			jitter:    rand.Float64(),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.tagScore != b.tagScore {
			return a.tagScore < b.tagScore
		}
		if a.diffScore != b.diffScore {
			return a.diffScore < b.diffScore
		}
		return a.jitter < b.jitter
	})

	n := len(ranked)
	if n > MaxResults {
		n = MaxResults
	}
	out := make([]model.Question, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, s.q)
	}
	return out
}
