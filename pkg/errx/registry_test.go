package errx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_ErrorRegistry(t *testing.T) {
	want := []RegistryEntry{
		{Code: "70000", Description: "CLI/argument validation error"},
		{Code: "71000", Description: "Chain description error"},
		{Code: "72000", Description: "Report rendering error"},
		{Code: "79000", Description: "Configuration error"},
	}
	if diff := cmp.Diff(want, ErrorRegistry()); diff != "" {
		t.Errorf("ErrorRegistry() mismatch (-want +got):\n%s", diff)
	}

	entries := ErrorRegistry()
	entries[0].Code = "mutated"
	if ErrorRegistry()[0].Code != CodeCLI {
		t.Error("ErrorRegistry() should return a copy")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	tests := []struct {
		code     string
		wantDesc string
		wantOK   bool
	}{
		{code: CodeCLI, wantDesc: DescCLI, wantOK: true},
		{code: CodeChain, wantDesc: DescChain, wantOK: true},
		{code: CodeRender, wantDesc: DescRender, wantOK: true},
		{code: CodeConfig, wantDesc: DescConfig, wantOK: true},
		{code: "00000", wantDesc: "", wantOK: false},
		{code: "", wantDesc: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			desc, ok := DescriptionFor(tt.code)
			if desc != tt.wantDesc || ok != tt.wantOK {
				t.Errorf("DescriptionFor(%q) = (%q, %v), want (%q, %v)", tt.code, desc, ok, tt.wantDesc, tt.wantOK)
			}
			if got := IsValidCode(tt.code); got != tt.wantOK {
				t.Errorf("IsValidCode(%q) = %v, want %v", tt.code, got, tt.wantOK)
			}

			cause := errors.New("cause")
			err := ForCode(tt.code, "msg", cause)
			if err.Code() != tt.code || err.Description() != tt.wantDesc {
				t.Errorf("ForCode(%q) = (%q, %q), want (%q, %q)", tt.code, err.Code(), err.Description(), tt.code, tt.wantDesc)
			}
			if !errors.Is(err, cause) {
				t.Errorf("ForCode(%q) should wrap its cause", tt.code)
			}
		})
	}
}
