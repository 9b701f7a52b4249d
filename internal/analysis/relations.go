// Package analysis derives the symbolic readings of a resolved chart:
// element relations against the day master, ten-god labels, strength
// assessment, and the pairwise stem/branch interactions. Everything here
// is a pure function over FourPillars and the ganzhi tables; nothing
// touches time.
package analysis

import (
	"bazi/internal/chart"
	"bazi/internal/ganzhi"
)

// Relation classifies another element against the day master's element.
type Relation int

const (
	SameElement Relation = iota // 帮: peer
	GeneratesMe                 // 生: nourishes the day master
	IGenerate                   // 泄: drains the day master
	IControl                    // 耗: consumes the day master's strength
	ControlsMe                  // 克: suppresses the day master
)

var relationNames = [5]string{"帮", "生", "泄", "耗", "克"}

func (r Relation) String() string { return relationNames[r] }

// Relate classifies other against the day-master element.
func Relate(day, other ganzhi.Element) Relation {
	switch other {
	case day:
		return SameElement
	case day.GeneratedBy():
		return GeneratesMe
	case day.Generates():
		return IGenerate
	case day.Controls():
		return IControl
	default:
		return ControlsMe
	}
}

// TenGod labels a stem relative to the day master, combining the element
// relation with polarity agreement.
type TenGod int

const (
	Friend TenGod = iota // 比肩
	RobWealth            // 劫财
	EatingGod            // 食神
	HurtingOfficer       // 伤官
	IndirectWealth       // 偏财
	DirectWealth         // 正财
	SevenKillings        // 七杀
	DirectOfficer        // 正官
	IndirectSeal         // 偏印
	DirectSeal           // 正印
)

var godNames = [10]string{
	"比肩", "劫财", "食神", "伤官", "偏财", "正财", "七杀", "正官", "偏印", "正印",
}

func (g TenGod) String() string { return godNames[g] }

// God labels other relative to the day stem. The day master compared with
// itself is 比肩, the identity case.
func God(day, other ganzhi.Stem) TenGod {
	samePolarity := day.Yang() == other.Yang()
	var base TenGod
	switch Relate(day.Element(), other.Element()) {
	case SameElement:
		base = Friend
	case IGenerate:
		base = EatingGod
	case IControl:
		base = IndirectWealth
	case ControlsMe:
		base = SevenKillings
	case GeneratesMe:
		base = IndirectSeal
	}
	if !samePolarity {
		base++
	}
	return base
}

// GodSet holds the ten-god labels of one pillar: the visible stem and the
// branch's hidden stems in principal-first order.
type GodSet struct {
	Stem   TenGod
	Hidden []TenGod
}

// Gods labels every stem and hidden stem of the chart against the day
// master, in year/month/day/hour order. The day pillar's own stem comes
// out as 比肩; presentation layers usually render it as the day master.
func Gods(fp chart.FourPillars) [4]GodSet {
	day := fp.DayMaster()
	var out [4]GodSet
	for i, p := range fp.All() {
		set := GodSet{Stem: God(day, p.Stem())}
		for _, h := range p.Branch().Hidden() {
			set.Hidden = append(set.Hidden, God(day, h.Stem))
		}
		out[i] = set
	}
	return out
}

// Flow classifies every stem, branch and hidden stem of the chart against
// the day master's element.
type Flow struct {
	Stem   [4]Relation
	Branch [4]Relation
	Hidden [4][]Relation
}

// RelationFlow computes the day-master relation of each chart position.
func RelationFlow(fp chart.FourPillars) Flow {
	day := fp.DayMaster().Element()
	var f Flow
	for i, p := range fp.All() {
		f.Stem[i] = Relate(day, p.Stem().Element())
		f.Branch[i] = Relate(day, p.Branch().Element())
		for _, h := range p.Branch().Hidden() {
			f.Hidden[i] = append(f.Hidden[i], Relate(day, h.Stem.Element()))
		}
	}
	return f
}
