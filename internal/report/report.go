/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package report renders an aggregator.Report as colored console
// output, an ASCII summary table, and an optional machine-readable
// JSON file.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/hako/durafmt"
	"github.com/olekukonko/tablewriter"

	"github.com/shift-left/sentinel/internal/aggregator"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/report/internal"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

var (
	fgRed     = color.New(color.FgRed).SprintFunc()
	fgGreen   = color.New(color.FgGreen).SprintFunc()
	fgHiGreen = color.New(color.FgHiGreen).SprintFunc()
	fgHiBlack = color.New(color.FgHiBlack).SprintFunc()
	fgYellow  = color.New(color.FgYellow).SprintFunc()
)

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// Results is everything the report command needs to render one run.
type Results struct {
	Report            *aggregator.Report
	Elapsed           time.Duration
	ThresholdEfficacy float64
	ThresholdCoverage float64
}

// Do prints the run's summary banner and per-file/per-directory
// tables, and returns an ExitError if a configured threshold was not
// met.
func Do(results Results) error {
	rep := results.Report
	if rep == nil || rep.Overall.Total == 0 {
		log.Infoln("\nNo results to report.")
		return nil
	}

	printBanner(results)
	printTable("By file", rep.SortedFileKeys(), rep.ByFile)
	printTable("By directory", rep.SortedDirKeys(), rep.ByDir)

	return assess(rep.Overall, results.ThresholdEfficacy, results.ThresholdCoverage)
}

func printBanner(results Results) {
	g := results.Report.Overall
	elapsed := durafmt.Parse(results.Elapsed).LimitFirstN(2)

	killed := fgHiGreen(g.Detected)
	survived := fgRed(survivedCount(g))
	buildFailures := fgHiBlack(g.BuildFailures)
	timeouts := fgGreen(g.Timeouts)

	log.Infoln("")
	log.Infoln(bannerStyle.Render("Mutation testing completed in " + elapsed.String()))
	log.Infof("Killed: %s, Survived: %s, Build failures: %s, Timeouts: %s\n",
		killed, survived, buildFailures, timeouts)
	log.Infof("Test efficacy: %.2f%%\n", efficacy(g))
	log.Infof("Mutation coverage: %.2f%%\n", g.Coverage()*100)
}

func survivedCount(g *aggregator.Group) int {
	return g.Total - g.Detected - g.Excluded()
}

// efficacy is Killed / (Killed + Survived), the percentage of covered
// mutants a test suite actually catches.
func efficacy(g *aggregator.Group) float64 {
	survived := survivedCount(g)
	if g.Detected+survived == 0 {
		return 0
	}
	return float64(g.Detected) / float64(g.Detected+survived) * 100
}

func printTable(title string, keys []string, groups map[string]*aggregator.Group) {
	if len(keys) == 0 {
		return
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Total", "Killed", "Survived", "Build fail", "Timeout", "Coverage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, k := range keys {
		g := groups[k]
		table.Append([]string{
			k,
			strconv.Itoa(g.Total), strconv.Itoa(g.Detected), strconv.Itoa(survivedCount(g)),
			strconv.Itoa(g.BuildFailures), strconv.Itoa(g.Timeouts),
			fmt.Sprintf("%.2f%%", g.Coverage()*100),
		})
	}
	table.Render()

	log.Infoln("")
	log.Infoln(title + ":")
	log.Infoln(buf.String())
}

func assess(overall *aggregator.Group, thresholdEfficacy, thresholdCoverage float64) error {
	if thresholdEfficacy > 0 && efficacy(overall) <= thresholdEfficacy {
		return execution.NewExitErr(execution.EfficacyThreshold)
	}
	if thresholdCoverage > 0 && overall.Coverage()*100 <= thresholdCoverage {
		return execution.NewExitErr(execution.MutantCoverageThreshold)
	}
	return nil
}

// WriteJSON renders rep as the on-disk OutputResult format to path.
func WriteJSON(path string, rep *aggregator.Report, elapsed time.Duration) error {
	files := make([]internal.OutputFile, 0, len(rep.ByFile))
	for _, k := range rep.SortedFileKeys() {
		files = append(files, internal.OutputFile{
			Filename: k,
			Stats:    groupStats(rep.ByFile[k]),
		})
	}

	result := internal.OutputResult{
		SourceRoot:        rep.SourceRoot,
		ElapsedTime:       elapsed.Seconds(),
		TestEfficacy:      efficacy(rep.Overall),
		MutationsCoverage: rep.Overall.Coverage() * 100,
		Overall:           groupStats(rep.Overall),
		Files:             files,
	}

	jsonResult, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, jsonResult, 0o644)
}

func groupStats(g *aggregator.Group) internal.Stats {
	return internal.Stats{
		Total:         g.Total,
		Killed:        g.Detected,
		Survived:      survivedCount(g),
		BuildFailures: g.BuildFailures,
		RuntimeErrors: g.RuntimeErrors,
		Timeouts:      g.Timeouts,
	}
}

// Mutant logs a single trial's result, the way a long `run` invocation
// streams progress one line per mutant.
func Mutant(r testoutcome.Result) {
	status := r.State.String()
	switch r.State {
	case testoutcome.Killed:
		status = fgHiGreen(status)
	case testoutcome.Survived:
		status = fgRed(status)
	case testoutcome.RuntimeError:
		status = fgYellow(status)
	case testoutcome.BuildFailure:
		status = fgHiBlack(status)
	case testoutcome.Timeout:
		status = fgGreen(status)
	}
	log.Infof("%s%s %s at %s\n", padding(r.State), status, r.Mutant.Operator, r.Mutant.Path)
}

func padding(s testoutcome.State) string {
	pad := 14 - len(s.String())
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%*s", pad, "")
}
