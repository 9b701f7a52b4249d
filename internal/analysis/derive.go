package analysis

import (
	"bazi/internal/chart"
	"bazi/internal/ganzhi"
)

// positionNames labels the four pillar slots in chart order.
var positionNames = [4]string{"年", "月", "日", "时"}

// PositionName returns the label of pillar slot i (0..3).
func PositionName(i int) string { return positionNames[i] }

// ElementCount is one phase's tally across the chart.
type ElementCount struct {
	Element ganzhi.Element
	Count   int
}

// CountElements tallies the five phases over the four visible stems and
// every hidden stem, indexed by element. Branch elements themselves are
// not counted; the hidden stems carry the branch's substance.
func CountElements(fp chart.FourPillars) [5]ElementCount {
	var counts [5]ElementCount
	for i, e := range ganzhi.Elements() {
		counts[i].Element = e
	}
	for _, p := range fp.All() {
		counts[p.Stem().Element()].Count++
		for _, h := range p.Branch().Hidden() {
			counts[h.Stem.Element()].Count++
		}
	}
	return counts
}

// Stages returns the day master's twelve-stage label on each of the four
// branches, in year/month/day/hour order.
func Stages(fp chart.FourPillars) [4]string {
	day := fp.DayMaster()
	var out [4]string
	for i, p := range fp.All() {
		out[i] = ganzhi.Stage(day, p.Branch())
	}
	return out
}

// Voids returns the 旬空 branch pair of each pillar's decade.
func Voids(fp chart.FourPillars) [4][2]ganzhi.Branch {
	var out [4][2]ganzhi.Branch
	for i, p := range fp.All() {
		out[i] = p.Void()
	}
	return out
}

// Nayins returns the melodic-element name of each pillar.
func Nayins(fp chart.FourPillars) [4]string {
	var out [4]string
	for i, p := range fp.All() {
		out[i] = p.Nayin()
	}
	return out
}

// StemCombination is a five-combination hit between two pillar stems.
type StemCombination struct {
	PosA, PosB int // pillar slots, PosA < PosB
	A, B       ganzhi.Stem
}

// StemCombinations scans the six pillar pairs for 五合 stem pairs.
func StemCombinations(fp chart.FourPillars) []StemCombination {
	all := fp.All()
	var out []StemCombination
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if ganzhi.StemsCombine(all[i].Stem(), all[j].Stem()) {
				out = append(out, StemCombination{
					PosA: i, PosB: j,
					A: all[i].Stem(), B: all[j].Stem(),
				})
			}
		}
	}
	return out
}

// BranchInteraction is one named relation between two pillar branches.
type BranchInteraction struct {
	PosA, PosB int // pillar slots, PosA < PosB
	A, B       ganzhi.Branch
	Relation   ganzhi.BranchRelation
}

// BranchInteractions scans the six pillar pairs for every named branch
// relation, in chart order.
func BranchInteractions(fp chart.FourPillars) []BranchInteraction {
	all := fp.All()
	var out []BranchInteraction
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i].Branch(), all[j].Branch()
			for _, rel := range ganzhi.BranchRelations(a, b) {
				out = append(out, BranchInteraction{
					PosA: i, PosB: j, A: a, B: b, Relation: rel,
				})
			}
		}
	}
	return out
}
