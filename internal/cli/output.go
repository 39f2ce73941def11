package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatch/bipartite"
	"github.com/katalvlaran/lvmatch/stable"
)

// report is a command result that can be printed as YAML or as a table.
type report interface {
	writeTable(w io.Writer) error
}

// render prints rep in the requested format.
func render(w io.Writer, format string, rep report) error {
	switch strings.ToLower(format) {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return enc.Close()
	case "table":
		return rep.writeTable(w)
	}

	return fmt.Errorf("unknown output format %q (want yaml or table)", format)
}

type stableReport struct {
	Strategy           string        `yaml:"strategy"`
	Proposals          int           `yaml:"proposals"`
	Pairs              []stable.Pair `yaml:"pairs"`
	UnmatchedProposers []string      `yaml:"unmatched_proposers"`
	UnmatchedReceivers []string      `yaml:"unmatched_receivers"`
}

func newStableReport(res *stable.Result) stableReport {
	return stableReport{
		Strategy:           res.Strategy.String(),
		Proposals:          res.Proposals,
		Pairs:              res.Pairs,
		UnmatchedProposers: res.UnmatchedA,
		UnmatchedReceivers: res.UnmatchedB,
	}
}

func (r stableReport) writeTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROPOSER\tRECEIVER")
	for _, p := range r.Pairs {
		fmt.Fprintf(tw, "%s\t%s\n", p.A, p.B)
	}
	for _, a := range r.UnmatchedProposers {
		fmt.Fprintf(tw, "%s\t-\n", a)
	}
	for _, b := range r.UnmatchedReceivers {
		fmt.Fprintf(tw, "-\t%s\n", b)
	}

	return tw.Flush()
}

type donorsReport struct {
	Size               int              `yaml:"size"`
	Phases             int              `yaml:"phases"`
	Pairs              []bipartite.Pair `yaml:"pairs"`
	UnmatchedDonors    []string         `yaml:"unmatched_donors"`
	UnmatchedReceivers []string         `yaml:"unmatched_receivers"`
}

func newDonorsReport(res *bipartite.Result) donorsReport {
	return donorsReport{
		Size:               res.Size,
		Phases:             res.Phases,
		Pairs:              res.Pairs,
		UnmatchedDonors:    res.UnmatchedDonors,
		UnmatchedReceivers: res.UnmatchedReceivers,
	}
}

func (r donorsReport) writeTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DONOR\tRECEIVER")
	for _, p := range r.Pairs {
		fmt.Fprintf(tw, "%s\t%s\n", p.Donor, p.Receiver)
	}
	for _, d := range r.UnmatchedDonors {
		fmt.Fprintf(tw, "%s\t-\n", d)
	}
	for _, rc := range r.UnmatchedReceivers {
		fmt.Fprintf(tw, "-\t%s\n", rc)
	}
	fmt.Fprintf(tw, "\nsize: %d\n", r.Size)

	return tw.Flush()
}
