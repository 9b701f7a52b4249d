package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"bazi/internal/analysis"
	"bazi/internal/chart"
	"bazi/internal/ganzhi"
	"bazi/internal/luck"
	"bazi/internal/terms"
)

// Semantic colors
var (
	colorPrimary = lipgloss.Color("#101F38") // dark blue
	colorAccent  = lipgloss.Color("#8BC34A") // lime green
	colorMuted   = lipgloss.Color("#808891")
	colorBad     = lipgloss.Color("#e53935")
)

// renderer writes the report sections, styled or plain.
type renderer struct {
	title  lipgloss.Style
	label  lipgloss.Style
	pillar lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
}

func newRenderer(pretty bool) *renderer {
	if !pretty {
		plain := lipgloss.NewStyle()
		return &renderer{title: plain, label: plain, pillar: plain, muted: plain, good: plain, bad: plain}
	}
	return &renderer{
		title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(colorMuted),
		pillar: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		good: lipgloss.NewStyle().
			Foreground(colorAccent),
		bad: lipgloss.NewStyle().
			Foreground(colorBad),
	}
}

var slotNames = [4]string{"年柱", "月柱", "日柱", "时柱"}

func (r *renderer) section(w io.Writer, name string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.title.Render("── "+name+" ──"))
}

// Chart prints the resolved pillars and the governing terms.
func (r *renderer) Chart(w io.Writer, at, civil time.Time, fp chart.FourPillars, prev, next terms.Occurrence) {
	r.section(w, "四柱")
	if !at.Equal(civil) {
		fmt.Fprintf(w, "%s %s\n", r.label.Render("钟表时间"), civil.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "%s %s\n", r.label.Render("真太阳时"), at.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(w, "%s %s\n", r.label.Render("时间"), at.Format("2006-01-02 15:04"))
	}

	for i, p := range fp.All() {
		fmt.Fprintf(w, "%s %s  %s\n",
			r.label.Render(slotNames[i]),
			r.pillar.Render(p.String()),
			r.muted.Render(p.Branch().Zodiac()))
	}
	fmt.Fprintf(w, "%s %v %s · %v %s\n",
		r.label.Render("节气"),
		prev.Term, prev.At.Format("01-02 15:04"),
		next.Term, next.At.Format("01-02 15:04"))
}

// Location prints the observed coordinates. Latitude never feeds the
// correction; it is carried for the record.
func (r *renderer) Location(w io.Writer, parts []string) {
	fmt.Fprintf(w, "%s %s\n", r.label.Render("位置"), strings.Join(parts, " "))
}

// Hidden prints each branch's hidden stems.
func (r *renderer) Hidden(w io.Writer, fp chart.FourPillars) {
	r.section(w, "藏干")
	for i, p := range fp.All() {
		var parts []string
		for _, h := range p.Branch().Hidden() {
			parts = append(parts, h.Stem.String())
		}
		fmt.Fprintf(w, "%s %s：%s\n",
			r.label.Render(slotNames[i]), p.Branch(), strings.Join(parts, " "))
	}
}

// Gods prints the ten-god labels per pillar.
func (r *renderer) Gods(w io.Writer, fp chart.FourPillars, gods [4]analysis.GodSet) {
	r.section(w, "十神")
	for i, set := range gods {
		stem := set.Stem.String()
		if i == 2 {
			stem = "日主"
		}
		var hidden []string
		for _, g := range set.Hidden {
			hidden = append(hidden, g.String())
		}
		fmt.Fprintf(w, "%s %s  %s\n",
			r.label.Render(slotNames[i]), stem,
			r.muted.Render("藏干 "+strings.Join(hidden, " ")))
	}
}

// Relations prints the element relation of every position to the day master.
func (r *renderer) Relations(w io.Writer, fp chart.FourPillars, f analysis.Flow) {
	r.section(w, "生克")
	all := fp.All()
	for i := range all {
		fmt.Fprintf(w, "%s %v%v  干%v 支%v\n",
			r.label.Render(slotNames[i]),
			all[i].Stem(), all[i].Branch(),
			f.Stem[i], f.Branch[i])
	}
}

// Strength prints the verdict and the favorable elements.
func (r *renderer) Strength(w io.Writer, v analysis.Verdict, fav analysis.Favorable) {
	r.section(w, "旺衰")
	fmt.Fprintf(w, "%s %v%v，%v月%v\n",
		r.label.Render("日主"), v.DayMaster, v.Element, v.Season, v.Status)
	fmt.Fprintf(w, "%s 同党 %d (力 %d)，异党 %d (力 %d)\n",
		r.label.Render("强弱"), v.SameCount, v.SamePower, v.RivalCount, v.RivalPower)
	fmt.Fprintf(w, "%s 得令 %s · 得地 %s\n",
		r.label.Render("格局"), yesNo(v.SeasonalCommand), yesNo(v.Rooted))
	fmt.Fprintf(w, "%s %s（%s）\n",
		r.label.Render("判定"), r.pillar.Render(v.Bias.String()), v.Level)

	fmt.Fprintf(w, "%s %s\n", r.label.Render("喜用"), r.good.Render(elementList(fav.Helpful)))
	if len(fav.Adverse) > 0 {
		fmt.Fprintf(w, "%s %s\n", r.label.Render("忌凶"), r.bad.Render(elementList(fav.Adverse)))
	}
	fmt.Fprintln(w, r.muted.Render(fav.Note))
}

// Stages prints the day master's twelve-stage position per pillar.
func (r *renderer) Stages(w io.Writer, stages [4]string) {
	r.section(w, "长生十二运")
	for i, s := range stages {
		fmt.Fprintf(w, "%s %s\n", r.label.Render(slotNames[i]), s)
	}
}

// Nayins prints the melodic element of each pillar.
func (r *renderer) Nayins(w io.Writer, nayins [4]string) {
	r.section(w, "纳音")
	for i, n := range nayins {
		fmt.Fprintf(w, "%s %s\n", r.label.Render(slotNames[i]), n)
	}
}

// Voids prints the void branch pair of each pillar's decade.
func (r *renderer) Voids(w io.Writer, voids [4][2]ganzhi.Branch) {
	r.section(w, "旬空")
	for i, v := range voids {
		fmt.Fprintf(w, "%s %v%v\n", r.label.Render(slotNames[i]), v[0], v[1])
	}
}

// Interactions prints stem combinations and branch relations.
func (r *renderer) Interactions(w io.Writer, combos []analysis.StemCombination, ints []analysis.BranchInteraction) {
	r.section(w, "合冲刑害")
	if len(combos) == 0 && len(ints) == 0 {
		fmt.Fprintln(w, r.muted.Render("无"))
		return
	}
	for _, c := range combos {
		fmt.Fprintf(w, "%s%s %v%v 合\n",
			analysis.PositionName(c.PosA), analysis.PositionName(c.PosB), c.A, c.B)
	}
	for _, in := range ints {
		fmt.Fprintf(w, "%s%s %v%v %v\n",
			analysis.PositionName(in.PosA), analysis.PositionName(in.PosB), in.A, in.B, in.Relation)
	}
}

// Luck prints the scheduled decade pillars and optional annual pillars.
func (r *renderer) Luck(w io.Writer, cycle luck.Cycle, annualYears int, birthYear int) {
	r.section(w, "大运")
	fmt.Fprintf(w, "%s %v，出生后%v起运\n",
		r.label.Render("起运"), cycle.Direction, cycle.Offset)
	fmt.Fprintf(w, "%s %s\n", r.label.Render("交运"), cycle.Onset.Format("2006-01-02 15:04"))

	for _, p := range cycle.Pillars {
		fmt.Fprintf(w, "%s  %d-%d  %s\n",
			r.pillar.Render(p.Pillar.String()),
			p.StartYear, p.EndYear,
			r.muted.Render(fmt.Sprintf("虚岁 %d-%d", p.StartAge, p.EndAge)))
		if annualYears > 0 {
			var line []string
			for _, a := range luck.AnnualPillars(birthYear, p.StartYear, annualYears) {
				line = append(line, fmt.Sprintf("%d%v", a.Year%100, a.Pillar))
			}
			fmt.Fprintln(w, r.muted.Render("  流年 "+strings.Join(line, " ")))
		}
	}
}

// Terms prints a year's 24 solar terms.
func (r *renderer) Terms(w io.Writer, year int, occs []terms.Occurrence) {
	r.section(w, fmt.Sprintf("%d年二十四节气", year))
	for _, o := range occs {
		name := o.Term.String()
		if o.Term.Sectional() {
			name = r.pillar.Render(name)
		}
		fmt.Fprintf(w, "%s  %s\n", name, o.At.Format("2006-01-02 15:04"))
	}
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func elementList(es []ganzhi.Element) string {
	var sb strings.Builder
	for _, e := range es {
		sb.WriteString(e.String())
	}
	return sb.String()
}
