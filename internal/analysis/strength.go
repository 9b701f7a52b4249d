package analysis

import (
	"bazi/internal/chart"
	"bazi/internal/ganzhi"
)

// Bias is the coarse strength reading of the day master.
type Bias int

const (
	Balanced Bias = iota // 平和
	Strong               // 偏强
	Weak                 // 偏弱
)

var biasNames = [3]string{"平和", "偏强", "偏弱"}

func (b Bias) String() string { return biasNames[b] }

// Level is the Wei Qianli eight-grade refinement of the verdict.
type Level int

const (
	Strongest    Level = iota // 最强
	FairlyStrong              // 中强
	NextStrong                // 次强
	Neutral                   // 中和
	SlightlyWeak              // 偏弱
	NextWeak                  // 次弱
	FairlyWeak                // 中弱
	Weakest                   // 最弱
)

var levelNames = [8]string{"最强", "中强", "次强", "中和", "偏弱", "次弱", "中弱", "最弱"}

func (l Level) String() string { return levelNames[l] }

// rootStages are the twelve-stage positions that count as rooted (得地).
var rootStages = map[string]bool{"长生": true, "临官": true, "帝旺": true}

// Verdict is the full strength assessment of a chart's day master.
type Verdict struct {
	DayMaster ganzhi.Stem
	Element   ganzhi.Element
	Season    ganzhi.Season
	Status    ganzhi.Status // seasonal grade of the day element

	SeasonalCommand bool // 得令: prosperous or assisted in the month
	Rooted          bool // 得地: a rooted stage on year/day/hour branch

	Counts [5]ElementCount

	SameCount, RivalCount int // raw tallies of the two camps
	SamePower, RivalPower int // tallies weighted by seasonal grade

	Bias  Bias
	Level Level
}

// Assess scores the day master by seasonal command and rootedness, using
// the fixed 旺相休囚死 weights, and grades the result.
func Assess(fp chart.FourPillars) Verdict {
	day := fp.DayMaster()
	season := ganzhi.SeasonOf(fp.Month.Branch())
	element := day.Element()

	v := Verdict{
		DayMaster: day,
		Element:   element,
		Season:    season,
		Status:    ganzhi.SeasonStatus(season, element),
		Counts:    CountElements(fp),
	}
	v.SeasonalCommand = v.Status == ganzhi.Prosperous || v.Status == ganzhi.Assisted

	for _, b := range []ganzhi.Branch{fp.Year.Branch(), fp.Day.Branch(), fp.Hour.Branch()} {
		if rootStages[ganzhi.Stage(day, b)] {
			v.Rooted = true
			break
		}
	}

	same := [2]ganzhi.Element{element, element.GeneratedBy()}
	rival := [3]ganzhi.Element{element.ControlledBy(), element.Controls(), element.Generates()}
	for _, e := range same {
		n := v.Counts[e].Count
		v.SameCount += n
		v.SamePower += n * ganzhi.SeasonStatus(season, e).Weight()
	}
	for _, e := range rival {
		n := v.Counts[e].Count
		v.RivalCount += n
		v.RivalPower += n * ganzhi.SeasonStatus(season, e).Weight()
	}

	sp, rp := float64(v.SamePower), float64(v.RivalPower)
	multiSupport := rp == 0 || sp >= rp*1.2
	multiHostile := sp == 0 || rp >= sp*1.2

	switch {
	case sp >= rp*1.1:
		v.Bias = Strong
	case rp >= sp*1.1:
		v.Bias = Weak
	default:
		v.Bias = Balanced
	}

	v.Level = level(v.SeasonalCommand, v.Rooted, multiSupport, multiHostile)
	return v
}

func level(command, rooted, multiSupport, multiHostile bool) Level {
	if command {
		switch {
		case multiSupport:
			return Strongest
		case multiHostile:
			return FairlyWeak
		case !rooted:
			return NextWeak
		default:
			return Neutral
		}
	}
	switch {
	case multiSupport:
		return FairlyStrong
	case multiHostile:
		return Weakest
	case rooted:
		return NextStrong
	default:
		return SlightlyWeak
	}
}

// Favorable suggests helpful and adverse elements from the verdict.
type Favorable struct {
	Helpful []ganzhi.Element
	Adverse []ganzhi.Element
	Note    string
}

// FavorableElements applies the support-or-drain principle: a weak day
// master welcomes peers and seals, a strong one welcomes output and
// wealth; a balanced chart commits to neither camp.
func FavorableElements(v Verdict) Favorable {
	e := v.Element
	switch v.Bias {
	case Weak:
		return Favorable{
			Helpful: []ganzhi.Element{e, e.GeneratedBy()},
			Adverse: []ganzhi.Element{e.Controls(), e.ControlledBy()},
			Note:    "身弱扶抑：取比劫印为喜，用以扶身；财官为忌，勿再耗克。",
		}
	case Strong:
		return Favorable{
			Helpful: []ganzhi.Element{e.Generates(), e.Controls()},
			Adverse: []ganzhi.Element{e, e.GeneratedBy()},
			Note:    "身强泄耗：取食伤财为喜，泄耗日主；比劫印为忌，避免再扶。",
		}
	default:
		return Favorable{
			Helpful: []ganzhi.Element{e},
			Note:    "平和：喜忌不偏，宜结合大运流年与格局再定。",
		}
	}
}
