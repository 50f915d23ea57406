package detect

import "testing"

func TestSniff_Report(t *testing.T) {
	input := `{"configuration":{"projectname":"demo","datetimeuuid":"abc"},"sources":[]}`
	if got := Sniff([]byte(input)); got != Report {
		t.Errorf("expected Report, got %v", got)
	}
}

func TestSniff_ReportLeadingWhitespace(t *testing.T) {
	input := "\n\t  {\"configuration\":{\"projectname\":\"demo\"},\"sources\":[{\"filename\":\"a.py\"}]}\n"
	if got := Sniff([]byte(input)); got != Report {
		t.Errorf("expected Report with leading whitespace, got %v", got)
	}
}

func TestSniff_ReportWithoutProject(t *testing.T) {
	input := `{"configuration":{},"sources":[]}`
	if got := Sniff([]byte(input)); got != Unknown {
		t.Errorf("expected Unknown without project name, got %v", got)
	}
}

func TestSniff_Integrated(t *testing.T) {
	input := `{"projectname":"all","creationdatetime":"20240101000000","reports":[]}`
	if got := Sniff([]byte(input)); got != Integrated {
		t.Errorf("expected Integrated, got %v", got)
	}
}

func TestSniff_SARIF(t *testing.T) {
	input := `{"version":"2.1.0","$schema":"https://sarif.dev","runs":[{"tool":{"driver":{"name":"test"}},"results":[]}]}`
	if got := Sniff([]byte(input)); got != SARIF {
		t.Errorf("expected SARIF, got %v", got)
	}
}

func TestSniff_Empty(t *testing.T) {
	if got := Sniff([]byte("")); got != Unknown {
		t.Errorf("expected Unknown for empty, got %v", got)
	}
}

func TestSniff_PlainText(t *testing.T) {
	if got := Sniff([]byte("this is not json")); got != Unknown {
		t.Errorf("expected Unknown for plain text, got %v", got)
	}
}

func TestSniff_InvalidJSON(t *testing.T) {
	if got := Sniff([]byte("{invalid")); got != Unknown {
		t.Errorf("expected Unknown for invalid JSON, got %v", got)
	}
}

func TestFormat_String(t *testing.T) {
	for f, want := range map[Format]string{
		Unknown: "unknown", Report: "report", Integrated: "integrated report", SARIF: "SARIF",
	} {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}
