package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

func runAnalyzeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	analyzeCerts = nil
	analyzeJSON = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"analyze", "--log-level", "error"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeCertFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atestados.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write cert file: %v", err)
	}
	return path
}

func TestAnalyzeMergesFileAndFlags(t *testing.T) {
	path := writeCertFile(t, `certificates:
  - start: 01/03/2024
    end: 10/03/2024
  - start: 2024-03-20
    days: 3
`)

	out, err := runAnalyzeCommand(t, path, "--cert", "11/03/2024+5d")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	for _, want := range []string{
		"Primeiro Atestado",
		"Contínuo",
		"Não Contínuo",
		"cert-3",
		"Maior afastamento contínuo: 15 dias (01/03/2024 a 15/03/2024)",
		"Atestados: 3",
		"Intervalos sem cobertura: 1 (4 dias)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeJSONOutput(t *testing.T) {
	out, err := runAnalyzeCommand(t, "--json", "--cert", "01/03/2024:05/03/2024", "--cert", "04/03/2024+4d")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if a.Summary.TotalCertificates != 2 || a.Summary.OverlappingCertificatesCount != 2 {
		t.Fatalf("summary = %+v", a.Summary)
	}
	if got := a.Summary.LongestContinuousLeave.TotalDays; got != 7 {
		t.Fatalf("longest leave = %d, want 7", got)
	}
}

func TestAnalyzeRejectedCertificate(t *testing.T) {
	out, err := runAnalyzeCommand(t, "--cert", "10/03/2024:01/03/2024", "--cert", "01/04/2024:02/04/2024")
	if err == nil {
		t.Fatal("expected an error for the rejected certificate")
	}
	if !strings.Contains(err.Error(), "1 certificate(s) rejected") {
		t.Fatalf("error = %v", err)
	}
	// the valid certificate is still analysed
	if !strings.Contains(out, "Atestados: 1") {
		t.Fatalf("output = %s", out)
	}
}

func TestAnalyzeNoCertificates(t *testing.T) {
	path := writeCertFile(t, "")

	out, err := runAnalyzeCommand(t, path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if strings.TrimSpace(out) != "Nenhum atestado válido." {
		t.Fatalf("output = %q", out)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := runAnalyzeCommand(t, filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to open certificate file") {
		t.Fatalf("error = %v", err)
	}
}
