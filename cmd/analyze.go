package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
	"github.com/spf13/cobra"
)

var (
	analyzeCerts []string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyse a set of leave certificates",
	Long: `Analyze reads certificates from a YAML or JSON file and/or --cert flags and prints
each certificate's continuity status, the timeline segments and the summary.

File format:
  certificates:
    - start: 01/03/2024
      end: 10/03/2024
    - start: 2024-03-11
      days: 5

Examples:
  ./atestado analyze atestados.yaml
  ./atestado analyze --cert 01/03/2024:10/03/2024 --cert 11/03/2024+5d
  ./atestado analyze atestados.yaml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringArrayVar(&analyzeCerts, "cert", nil, "Certificate as START:END or START+Nd (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var entries []model.Entry

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open certificate file: %w", err)
		}
		fileEntries, err := service.LoadEntries(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to read certificate file %s: %w", args[0], err)
		}
		entries = append(entries, fileEntries...)
	}

	rejected := 0
	for _, arg := range analyzeCerts {
		e, err := service.ParseCertFlag(arg)
		if err != nil {
			slog.Error("rejected certificate", "cert", arg, "error", err)
			rejected++
			continue
		}
		entries = append(entries, e)
	}

	certs := make([]model.Certificate, 0, len(entries))
	for i, e := range entries {
		cert, err := service.ResolveEntry(fmt.Sprintf("cert-%d", i+1), e)
		if err != nil {
			slog.Error("rejected certificate", "entry", i+1, "start", e.Start, "error", err)
			rejected++
			continue
		}
		certs = append(certs, cert)
	}

	analysis := service.Analyze(certs)

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
	} else {
		printAnalysis(out, analysis)
	}

	// the analysis of the valid certificates is still printed
	if rejected > 0 {
		return fmt.Errorf("%d certificate(s) rejected", rejected)
	}
	return nil
}

func printAnalysis(out io.Writer, a model.Analysis) {
	if len(a.Annotated) == 0 {
		fmt.Fprintln(out, "Nenhum atestado válido.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINÍCIO\tTÉRMINO\tDIAS\tSTATUS")
	for _, c := range a.Annotated {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", c.Rank, c.StartDate.Format(), c.EndDate.Format(), c.Days, c.Status.Label())
	}
	tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INÍCIO\tTÉRMINO\tDIAS\tSITUAÇÃO\tATESTADOS")
	for _, s := range a.Segments {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.StartDate.Format(), s.EndDate.Format(), s.DurationDays, s.Kind.Label(), strings.Join(s.CertificateIDs, ","))
	}
	tw.Flush()

	sum := a.Summary
	fmt.Fprintln(out)
	if l := sum.LongestContinuousLeave; l.StartDate != nil {
		fmt.Fprintf(out, "Maior afastamento contínuo: %d dias (%s a %s)\n", l.TotalDays, l.StartDate.Format(), l.EndDate.Format())
	}
	fmt.Fprintf(out, "Atestados: %d\n", sum.TotalCertificates)
	fmt.Fprintf(out, "Sequências contínuas: %d\n", sum.ContinuousSequenceCount)
	fmt.Fprintf(out, "Atestados sobrepostos: %d\n", sum.OverlappingCertificatesCount)
	fmt.Fprintf(out, "Intervalos sem cobertura: %d (%d dias)\n", sum.GapCount, sum.TotalNonCoveredDays)
}
