package tinyfmt

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenArg is one tagged argument in testdata/cases.yaml. Exactly one
// field is set.
type goldenArg struct {
	S *string `yaml:"s"`
	D *int64  `yaml:"d"`
	X *uint64 `yaml:"x"`
	C *string `yaml:"c"`
}

func (g goldenArg) toArg() (Arg, error) {
	switch {
	case g.S != nil:
		return Str(*g.S), nil
	case g.D != nil:
		return Int(int32(*g.D)), nil
	case g.X != nil:
		return Uint(uint32(*g.X)), nil
	case g.C != nil:
		if len(*g.C) != 1 {
			return Arg{}, fmt.Errorf("char argument %q must be one byte", *g.C)
		}
		return Char((*g.C)[0]), nil
	}
	return Arg{}, errors.New("empty argument")
}

type goldenCase struct {
	Name       string      `yaml:"name"`
	Format     string      `yaml:"format"`
	Args       []goldenArg `yaml:"args"`
	Want       string      `yaml:"want"`
	Size       int         `yaml:"size"`
	WantBuffer string      `yaml:"want_buffer"`
}

type goldenFile struct {
	Cases []goldenCase `yaml:"cases"`
}

func loadGoldenCases(t *testing.T, path string) []goldenCase {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	var gf goldenFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		t.Fatalf("failed to parse golden file: %v", err)
	}
	if len(gf.Cases) == 0 {
		t.Fatal("golden file has no cases")
	}
	return gf.Cases
}

func TestGoldenFiles(t *testing.T) {
	for _, gc := range loadGoldenCases(t, "testdata/cases.yaml") {
		t.Run(gc.Name, func(t *testing.T) {
			args := make([]Arg, len(gc.Args))
			for i, ga := range gc.Args {
				a, err := ga.toArg()
				if err != nil {
					t.Fatalf("argument %d: %v", i+1, err)
				}
				args[i] = a
			}

			dev := &deviceRecorder{}
			Printf(dev, gc.Format, args...)
			if dev.String() != gc.Want {
				t.Errorf("Printf(%q) = %q, want %q", gc.Format, dev.String(), gc.Want)
			}

			if gc.Size == 0 {
				return
			}
			buf := make([]byte, gc.Size)
			n := Snprintf(buf, gc.Format, args...)
			if got := string(buf[:n]); got != gc.WantBuffer {
				t.Errorf("Snprintf(%q, size %d) = %q, want %q", gc.Format, gc.Size, got, gc.WantBuffer)
			}
			if buf[n] != 0 {
				t.Errorf("Snprintf(%q, size %d) missing terminator", gc.Format, gc.Size)
			}
		})
	}
}
