package cmd

import "testing"

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
		wantLine int
		wantErr  bool
	}{
		{name: "PathAndLine", input: "src/main.go:42", wantPath: "src/main.go", wantLine: 42},
		{name: "PathOnly", input: "src/main.go", wantPath: "src/main.go", wantLine: 0},
		{name: "LineOne", input: "a.txt:1", wantPath: "a.txt", wantLine: 1},
		{name: "BadLine", input: "a.txt:x", wantErr: true},
		{name: "ZeroLine", input: "a.txt:0", wantErr: true},
		{name: "NegativeLine", input: "a.txt:-3", wantErr: true},
		{name: "EmptyPath", input: ":42", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, line, err := parseTarget(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if path != tt.wantPath || line != tt.wantLine {
				t.Errorf("parseTarget(%q) = (%q, %d), want (%q, %d)", tt.input, path, line, tt.wantPath, tt.wantLine)
			}
		})
	}
}

func TestApp_Commands(t *testing.T) {
	app := App()

	for _, name := range []string{"trace", "blame", "show"} {
		if app.Command(name) == nil {
			t.Errorf("missing command %q", name)
		}
	}
}
