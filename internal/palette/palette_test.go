package palette

import (
	"reflect"
	"testing"
)

func TestResolve_BuiltinSizes(t *testing.T) {
	tests := []struct {
		scheme string
		want   int
	}{
		{"rainbow", 7},
		{"blue", 4},
		{"fire", 4},
		{"purple", 4},
	}
	for _, tt := range tests {
		if got := len(Resolve(tt.scheme)); got != tt.want {
			t.Errorf("Resolve(%q): got %d colors, want %d", tt.scheme, got, tt.want)
		}
	}
}

func TestResolve_UnknownFallsBackToRainbow(t *testing.T) {
	got := Resolve("nonexistent")
	want := Resolve("rainbow")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve(\"nonexistent\") = %v, want rainbow %v", got, want)
	}
}

func TestNames_AllResolvable(t *testing.T) {
	for _, name := range Names() {
		if len(Resolve(name)) == 0 {
			t.Errorf("Resolve(%q) returned an empty palette", name)
		}
	}
}
