package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/shared/simconfig"
	"BaseWars/internal/sim"
)

func printBanner(w io.Writer, cfg *simconfig.Config) {
	titleColor := color.New(color.FgCyan, color.Bold)

	titleColor.Fprintln(w, "\n╭──────────────────────────╮")
	titleColor.Fprintln(w, "│  BaseWars                │")
	titleColor.Fprintln(w, "╰──────────────────────────╯")
	fmt.Fprintf(w, "   %s vs %s, variant %d\n", cfg.Sim.BaseNames[0], cfg.Sim.BaseNames[1], cfg.Sim.Variant)
	if cfg.HTTP.Enabled {
		fmt.Fprintf(w, "   观战接口: http://%s/bases  ws://%s/ws\n", cfg.HTTP.Addr, cfg.HTTP.Addr)
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, sum *sim.Summary) {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Base", "Gold", "Wood", "Food", "Peasants", "Footmen", "Buildings", "Army"}),
	)
	for _, st := range sum.Statuses {
		row := []string{
			st.Name,
			humanize.Comma(int64(st.Stock.Gold)),
			humanize.Comma(int64(st.Stock.Wood)),
			fmt.Sprintf("%d/%d", st.Stock.FoodUsed, st.Stock.FoodLimit),
			strconv.Itoa(st.Peasants),
			strconv.Itoa(st.Footmen),
			formatBuildings(st.Buildings),
			strconv.Itoa(st.Army),
		}
		table.Append(row)
	}
	table.Render()

	fmt.Fprintf(w, "\n   run %s\n", sum.RunID)
	if sum.Prepared > 0 {
		fmt.Fprintf(w, "   备战耗时: %s\n", sum.Prepared.Round(time.Millisecond))
	}
	if sum.Report == nil {
		infoColor.Fprintf(w, "   没有战报（总耗时 %s）\n", sum.Elapsed.Round(time.Millisecond))
		return
	}
	rep := sum.Report
	successColor.Fprintf(w, "\n✓ %s 获胜，存活 %d\n", rep.Winner, rep.Survivors)
	fmt.Fprintf(w, "   阵亡: %s %d / %s %d\n", rep.BaseA, rep.DeathsA, rep.BaseB, rep.DeathsB)
	fmt.Fprintf(w, "   战斗耗时: %s，结束于 %s\n", rep.Duration().Round(time.Millisecond), humanize.Time(rep.FinishedAt))
}

func printUnitTable(w io.Writer, tbl unitconf.Table) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Kind", "Gold", "Wood", "Food", "Time", "Health", "Attack", "Supply"}),
	)
	for _, k := range tbl.Kinds() {
		s := tbl[k]
		attack, health := "-", "-"
		if k.IsUnit() {
			attack = fmt.Sprintf("%d-%d", s.AttackMin, s.AttackMax)
			health = strconv.Itoa(s.Health)
		}
		row := []string{
			string(k),
			strconv.Itoa(s.GoldCost),
			strconv.Itoa(s.WoodCost),
			strconv.Itoa(s.FoodCost),
			s.BuildTime.String(),
			health,
			attack,
			strconv.Itoa(s.FoodSupply),
		}
		table.Append(row)
	}
	table.Render()
}

func formatBuildings(m map[unitconf.Kind]int) string {
	if len(m) == 0 {
		return "-"
	}
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	out := ""
	for i, k := range kinds {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s×%d", k, m[unitconf.Kind(k)])
	}
	return out
}
