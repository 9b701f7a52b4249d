package ganzhi

// Stem-derivation rules. Month and hour stems are not independently cyclic:
// both repeat on a 5-anchor period, so each is a small offset table indexed
// by the anchor stem mod 5.

// firstMonthStems maps yearStem%5 to the stem of the 寅 month (五虎遁).
var firstMonthStems = [5]Stem{StemBing, StemWu, StemGeng, StemRen, StemJia}

// ziHourStems maps dayStem%5 to the stem of the 子 hour (五鼠遁).
var ziHourStems = [5]Stem{StemJia, StemBing, StemWu, StemGeng, StemRen}

// MonthStem derives the stem of a month pillar from the year stem.
// monthOrdinal counts sectional months from 0 (the 寅 month opened by 立春).
func MonthStem(yearStem Stem, monthOrdinal int) Stem {
	first := firstMonthStems[yearStem.norm()%5]
	return Stem((int(first) + monthOrdinal) % 10)
}

// HourStem derives the stem of an hour pillar from the day stem.
func HourStem(dayStem Stem, hourBranch Branch) Stem {
	zi := ziHourStems[dayStem.norm()%5]
	return Stem((int(zi) + int(hourBranch.norm())) % 10)
}

// Season of the year as commanded by the month branch.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

var seasonNames = [4]string{"春", "夏", "秋", "冬"}

func (s Season) String() string { return seasonNames[s] }

// SeasonOf maps a month branch to its season (寅卯辰 spring, and so on;
// the earthen months close each season rather than forming their own).
func SeasonOf(monthBranch Branch) Season {
	return Season(((int(monthBranch.norm()) + 10) % 12) / 3)
}

// Status is an element's seasonal prosperity grade (旺相休囚死).
type Status int

const (
	Prosperous Status = iota // 旺
	Assisted                 // 相
	Resting                  // 休
	Trapped                  // 囚
	Dead                     // 死
)

var statusNames = [5]string{"旺", "相", "休", "囚", "死"}

func (s Status) String() string { return statusNames[s] }

// Weight returns the scoring weight of the grade (旺 5 down to 死 1).
func (s Status) Weight() int { return 5 - int(s) }

// seasonStatus[season][element] in Wood/Fire/Earth/Metal/Water order.
var seasonStatus = [4][5]Status{
	Spring: {Prosperous, Assisted, Dead, Trapped, Resting},
	Summer: {Resting, Prosperous, Assisted, Dead, Trapped},
	Autumn: {Dead, Trapped, Resting, Prosperous, Assisted},
	Winter: {Assisted, Dead, Trapped, Resting, Prosperous},
}

// SeasonStatus grades an element for the given season.
func SeasonStatus(season Season, e Element) Status {
	return seasonStatus[season][e]
}

// Twelve-stage life cycle (长生十二运).

var stageNames = [12]string{
	"长生", "沐浴", "冠带", "临官", "帝旺", "衰", "病", "死", "墓", "绝", "胎", "养",
}

// stageStart is the 长生 branch of each stem.
var stageStart = [10]Branch{
	BranchHai, BranchWu, BranchYin, BranchYou, BranchYin,
	BranchYou, BranchSi, BranchZi, BranchShen, BranchMao,
}

// Stage returns the twelve-stage label of a stem sitting on a branch.
// Yang stems run the cycle forward from their 长生 branch, yin stems run
// it backward.
func Stage(s Stem, b Branch) string {
	start := stageStart[s.norm()]
	var steps int
	if s.Yang() {
		steps = (int(b.norm()) - int(start) + 12) % 12
	} else {
		steps = (int(start) - int(b.norm()) + 12) % 12
	}
	return stageNames[steps]
}

// Nayin (纳音): one name per adjacent sexagenary pair.

var nayinNames = [30]string{
	"海中金", "炉中火", "大林木", "路旁土", "剑锋金",
	"山头火", "涧下水", "城头土", "白蜡金", "杨柳木",
	"泉中水", "屋上土", "霹雳火", "松柏木", "长流水",
	"沙中金", "山下火", "平地木", "壁上土", "金箔金",
	"覆灯火", "天河水", "大驿土", "钗钏金", "桑柘木",
	"大溪水", "沙中土", "天上火", "石榴木", "大海水",
}

// Nayin returns the melodic-element name of the pillar.
func (p Pillar) Nayin() string { return nayinNames[p.index/2] }

// Pairwise stem and branch interactions.

// StemsCombine reports the five-combination relation (甲己, 乙庚, 丙辛,
// 丁壬, 戊癸): stems five apart around the cycle.
func StemsCombine(a, b Stem) bool {
	d := (int(a.norm()) - int(b.norm()) + 10) % 10
	return d == 5
}

// BranchRelation is one named pairwise branch interaction.
type BranchRelation int

const (
	RelSixCombine     BranchRelation = iota // 六合
	RelClash                                // 冲
	RelPunishment                           // 刑
	RelSelfPunishment                       // 自刑
	RelHarm                                 // 害
	RelBreak                                // 破
)

var relationNames = [...]string{"六合", "冲", "刑", "自刑", "害", "破"}

func (r BranchRelation) String() string { return relationNames[r] }

type branchPair struct{ a, b Branch }

func pairKey(a, b Branch) branchPair {
	a, b = a.norm(), b.norm()
	if a > b {
		a, b = b, a
	}
	return branchPair{a, b}
}

var sixCombinePairs = pairSet(
	[2]Branch{BranchZi, BranchChou}, [2]Branch{BranchYin, BranchHai},
	[2]Branch{BranchMao, BranchXu}, [2]Branch{BranchChen, BranchYou},
	[2]Branch{BranchSi, BranchShen}, [2]Branch{BranchWu, BranchWei},
)

var harmPairs = pairSet(
	[2]Branch{BranchZi, BranchWei}, [2]Branch{BranchChou, BranchWu},
	[2]Branch{BranchYin, BranchSi}, [2]Branch{BranchMao, BranchChen},
	[2]Branch{BranchShen, BranchHai}, [2]Branch{BranchYou, BranchXu},
)

var breakPairs = pairSet(
	[2]Branch{BranchZi, BranchYou}, [2]Branch{BranchChou, BranchChen},
	[2]Branch{BranchYin, BranchHai}, [2]Branch{BranchMao, BranchWu},
	[2]Branch{BranchSi, BranchShen}, [2]Branch{BranchWei, BranchXu},
)

// Punishment pairs from the 寅巳申 and 丑未戌 triads plus the 子卯 mutual
// punishment. Self-punishing branches are handled separately.
var punishmentPairs = pairSet(
	[2]Branch{BranchYin, BranchSi}, [2]Branch{BranchSi, BranchShen},
	[2]Branch{BranchShen, BranchYin},
	[2]Branch{BranchChou, BranchWei}, [2]Branch{BranchWei, BranchXu},
	[2]Branch{BranchXu, BranchChou},
	[2]Branch{BranchZi, BranchMao},
)

var selfPunishing = map[Branch]bool{
	BranchChen: true, BranchWu: true, BranchYou: true, BranchHai: true,
}

func pairSet(pairs ...[2]Branch) map[branchPair]bool {
	m := make(map[branchPair]bool, len(pairs))
	for _, p := range pairs {
		m[pairKey(p[0], p[1])] = true
	}
	return m
}

// BranchRelations lists every named interaction between two branches,
// in the fixed order combine, clash, punishment, harm, break.
func BranchRelations(a, b Branch) []BranchRelation {
	var rels []BranchRelation
	if a.norm() == b.norm() {
		if selfPunishing[a.norm()] {
			rels = append(rels, RelSelfPunishment)
		}
		return rels
	}
	key := pairKey(a, b)
	if sixCombinePairs[key] {
		rels = append(rels, RelSixCombine)
	}
	if (int(a.norm())-int(b.norm())+12)%12 == 6 {
		rels = append(rels, RelClash)
	}
	if punishmentPairs[key] {
		rels = append(rels, RelPunishment)
	}
	if harmPairs[key] {
		rels = append(rels, RelHarm)
	}
	if breakPairs[key] {
		rels = append(rels, RelBreak)
	}
	return rels
}
