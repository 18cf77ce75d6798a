package bytecode

import "testing"

// End-to-end: source text through lexer, parser, compiler and VM.
func TestPipeline(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "7"},
		{"(1 + 2) * 3;", "9"},
		{"100 / 10 / 2;", "5"},
		{"1 < 2;", "true"},
		{"1 + 1 == 2;", "true"},
		{"if (5 > 3) { 1 } else { 2 };", "1"},
		{"if (5 < 3) { 1 } else { 2 };", "2"},
		{"if (false) { 1 };", "null"},
		{"if (true) { if (true) { 11 } };", "11"},
		{"if (true) { 1 }; if (false) { 2 }; 3;", "3"},
	}

	for _, tt := range tests {
		if got := lastPopped(t, tt.input).Inspect(); got != tt.want {
			t.Errorf("run(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

// Compiled chunks survive the artifact format: serialize, deserialize, run.
func TestPipelineThroughArtifact(t *testing.T) {
	chunk := compileSource(t, "if (2 > 1) { 40 + 2 };")

	data, err := chunk.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	vm := NewVM()
	if err := vm.Run(restored); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, ok := vm.LastPopped().(*Integer)
	if !ok || got.Value != 42 {
		t.Errorf("LastPopped() = %v, want 42", vm.LastPopped())
	}
}
