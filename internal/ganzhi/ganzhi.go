// Package ganzhi models the heavenly-stem / earthly-branch symbol system:
// the 10 stems, the 12 branches, and the 60-term sexagenary cycle their
// pairing forms. All lookup tables here are fixed, immutable data; nothing
// in this package depends on time computation.
package ganzhi

import "fmt"

// Element is one of the five phases (wuxing).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [5]string{"木", "火", "土", "金", "水"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return "?"
	}
	return elementNames[e]
}

// Elements lists the five phases in the conventional 木火土金水 order.
func Elements() [5]Element {
	return [5]Element{Wood, Fire, Earth, Metal, Water}
}

// Generates reports the phase e produces (木生火, 火生土, ...).
func (e Element) Generates() Element {
	return [5]Element{Fire, Earth, Metal, Water, Wood}[e]
}

// GeneratedBy reports the phase that produces e.
func (e Element) GeneratedBy() Element {
	return [5]Element{Water, Wood, Fire, Earth, Metal}[e]
}

// Controls reports the phase e overcomes (木克土, 火克金, ...).
func (e Element) Controls() Element {
	return [5]Element{Earth, Metal, Water, Wood, Fire}[e]
}

// ControlledBy reports the phase that overcomes e.
func (e Element) ControlledBy() Element {
	return [5]Element{Metal, Water, Wood, Fire, Earth}[e]
}

// Stem is one of the 10 heavenly stems, index 0 (甲) through 9 (癸).
type Stem int

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

var stemNames = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemElements = [10]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

func (s Stem) String() string { return stemNames[s.norm()] }

func (s Stem) norm() Stem { return ((s % 10) + 10) % 10 }

// Element returns the phase of the stem.
func (s Stem) Element() Element { return stemElements[s.norm()] }

// Yang reports stem polarity: even indices are yang, odd are yin.
func (s Stem) Yang() bool { return s.norm()%2 == 0 }

// Branch is one of the 12 earthly branches, index 0 (子) through 11 (亥).
type Branch int

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var branchNames = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchElements = [12]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

var zodiacNames = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

func (b Branch) String() string { return branchNames[b.norm()] }

func (b Branch) norm() Branch { return ((b % 12) + 12) % 12 }

// Element returns the phase of the branch.
func (b Branch) Element() Element { return branchElements[b.norm()] }

// Yang reports branch polarity: even indices are yang, odd are yin.
func (b Branch) Yang() bool { return b.norm()%2 == 0 }

// Zodiac returns the animal associated with the branch.
func (b Branch) Zodiac() string { return zodiacNames[b.norm()] }

// HiddenStem is a stem concealed inside a branch, with its conventional
// relative weight (principal 60 or 70, middle 30, residual 10; a sole
// hidden stem carries the full 100).
type HiddenStem struct {
	Stem   Stem
	Weight int
}

var hiddenStems = [12][]HiddenStem{
	BranchZi:   {{StemGui, 100}},
	BranchChou: {{StemJi, 60}, {StemGui, 30}, {StemXin, 10}},
	BranchYin:  {{StemJia, 60}, {StemBing, 30}, {StemWu, 10}},
	BranchMao:  {{StemYi, 100}},
	BranchChen: {{StemWu, 60}, {StemYi, 30}, {StemGui, 10}},
	BranchSi:   {{StemBing, 60}, {StemGeng, 30}, {StemWu, 10}},
	BranchWu:   {{StemDing, 70}, {StemJi, 30}},
	BranchWei:  {{StemJi, 60}, {StemDing, 30}, {StemYi, 10}},
	BranchShen: {{StemGeng, 60}, {StemRen, 30}, {StemWu, 10}},
	BranchYou:  {{StemXin, 100}},
	BranchXu:   {{StemWu, 60}, {StemXin, 30}, {StemDing, 10}},
	BranchHai:  {{StemRen, 70}, {StemJia, 30}},
}

// Hidden returns the ordered hidden stems of the branch, principal first.
// The returned slice is shared read-only data; callers must not modify it.
func (b Branch) Hidden() []HiddenStem { return hiddenStems[b.norm()] }

// Pillar is one stem-branch pair, identified by its position in the
// sexagenary cycle. Stem and branch are always derived from the single
// cycle index, which makes their parity agreement structural: only the 60
// matched combinations are representable.
type Pillar struct {
	index int // 0..59
}

// PillarFromIndex builds a pillar from a (possibly unnormalized) cycle index.
func PillarFromIndex(i int) Pillar {
	return Pillar{index: ((i % 60) + 60) % 60}
}

// PillarOf returns the unique pillar pairing s with b.
// The pair is invalid when stem and branch parities disagree.
func PillarOf(s Stem, b Branch) (Pillar, error) {
	s, b = s.norm(), b.norm()
	if int(s)%2 != int(b)%2 {
		return Pillar{}, fmt.Errorf("stem %v and branch %v never pair in the sexagenary cycle", s, b)
	}
	// CRT over mod 10 and mod 12: step by 12 from the branch until the
	// stem residue matches.
	i := int(b)
	for i%10 != int(s) {
		i += 12
	}
	return Pillar{index: i % 60}, nil
}

// Index returns the sexagenary cycle position, 0 (甲子) through 59 (癸亥).
func (p Pillar) Index() int { return p.index }

// Stem returns the heavenly stem of the pillar.
func (p Pillar) Stem() Stem { return Stem(p.index % 10) }

// Branch returns the earthly branch of the pillar.
func (p Pillar) Branch() Branch { return Branch(p.index % 12) }

// Step advances the pillar n positions around the cycle; n may be negative.
func (p Pillar) Step(n int) Pillar { return PillarFromIndex(p.index + n) }

func (p Pillar) String() string { return p.Stem().String() + p.Branch().String() }

// Void returns the two branches absent from the pillar's decade (旬空).
func (p Pillar) Void() [2]Branch {
	start := p.index - p.index%10
	return [2]Branch{Branch(start + 10).norm(), Branch(start + 11).norm()}
}
