package initialize

import (
	"reflect"
	"testing"
)

func TestInferNamespace(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []NamespaceCandidate
	}{
		{
			name:  "scoped packages",
			names: []string{"@airswap/swap", "@airswap/utils", "ethers-helper"},
			want: []NamespaceCandidate{
				{Prefix: "@airswap/", Packages: []string{"@airswap/swap", "@airswap/utils"}},
			},
		},
		{
			name:  "single scoped package still counts",
			names: []string{"@acme/core"},
			want: []NamespaceCandidate{
				{Prefix: "@acme/", Packages: []string{"@acme/core"}},
			},
		},
		{
			name:  "shared leading word",
			names: []string{"swap-core", "swap_types", "swap-utils", "common"},
			want: []NamespaceCandidate{
				{Prefix: "swap-", Packages: []string{"swap-core", "swap-utils"}},
			},
		},
		{
			name:  "sorted by count then prefix",
			names: []string{"@b/x", "@a/x", "@c/x", "@c/y"},
			want: []NamespaceCandidate{
				{Prefix: "@c/", Packages: []string{"@c/x", "@c/y"}},
				{Prefix: "@a/", Packages: []string{"@a/x"}},
				{Prefix: "@b/", Packages: []string{"@b/x"}},
			},
		},
		{
			name:  "nothing shared",
			names: []string{"gateway", "common", "redis-cache"},
			want:  []NamespaceCandidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferNamespace(tt.names)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InferNamespace() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNamePrefix(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"@airswap/swap", "@airswap/", true},
		{"@/swap", "", false},
		{"@airswap", "", false},
		{"swap-core", "swap-", true},
		{"swap_core", "swap_", true},
		{"-core", "", false},
		{"gateway", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := namePrefix(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("namePrefix(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
