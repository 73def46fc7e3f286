package lineparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	stakkerlog "github.com/uazu/stakker-log"
)

func TestParseScalars(t *testing.T) {
	nodes, err := Parse(`u=123 i=-45 f=1.5 t=true x=false s=abc q="a b" n`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Node{
		{Key: "u", HasKey: true, Kind: U64, U64: 123},
		{Key: "i", HasKey: true, Kind: I64, I64: -45},
		{Key: "f", HasKey: true, Kind: F64, F64: 1.5},
		{Key: "t", HasKey: true, Kind: Bool, Bool: true},
		{Key: "x", HasKey: true, Kind: Bool},
		{Key: "s", HasKey: true, Kind: String, Str: "abc"},
		{Key: "q", HasKey: true, Kind: String, Str: "a b"},
		{Key: "n", HasKey: true, Kind: Null},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Fatalf("node mismatch (-want +got):\n%s", diff)
	}
}

func TestParseContainers(t *testing.T) {
	nodes, err := Parse(`m{a=1 nested{b=2}} xs[1 x [true]] e{} f[]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Node{
		{Key: "m", HasKey: true, Kind: Map, Items: []Node{
			{Key: "a", HasKey: true, Kind: U64, U64: 1},
			{Key: "nested", HasKey: true, Kind: Map, Items: []Node{
				{Key: "b", HasKey: true, Kind: U64, U64: 2},
			}},
		}},
		{Key: "xs", HasKey: true, Kind: Arr, Items: []Node{
			{Kind: U64, U64: 1},
			{Kind: String, Str: "x"},
			{Kind: Arr, Items: []Node{{Kind: Bool, Bool: true}}},
		}},
		{Key: "e", HasKey: true, Kind: Map, Items: nil},
		{Key: "f", HasKey: true, Kind: Arr, Items: nil},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Fatalf("node mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEscapes(t *testing.T) {
	nodes, err := Parse(`a\20b=1 \20=2 q="x\22y\5Cz"`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if nodes[0].Key != "a b" {
		t.Fatalf("unexpected decoded key %q", nodes[0].Key)
	}
	if nodes[1].Key != " " {
		t.Fatalf("empty-key placeholder should decode to space, got %q", nodes[1].Key)
	}
	if nodes[2].Str != `x"y\z` {
		t.Fatalf("unexpected decoded value %q", nodes[2].Str)
	}
}

// Quoting pins strings, and bare tokens only become numbers when the number
// would re-render to the identical token.
func TestParseTypeInference(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{`k="42"`, String},
		{`k=42`, U64},
		{`k=007`, String},
		{`k=+12`, String},
		{`k=1.0`, String},
		{`k=-0`, F64},
		{`k=1e3`, String},
		{`k=18446744073709551615`, U64},
		{`k=-9223372036854775808`, I64},
		{`k=NaN`, F64},
		{`k=`, String},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			nodes, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(nodes) != 1 || nodes[0].Kind != tc.kind {
				t.Fatalf("got kind %v want %v", nodes[0].Kind, tc.kind)
			}
		})
	}
}

func TestParseKeylessItems(t *testing.T) {
	nodes, err := Parse(`{a=1} [2]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if nodes[0].HasKey || nodes[0].Kind != Map {
		t.Fatalf("expected keyless map, got %+v", nodes[0])
	}
	if nodes[1].HasKey || nodes[1].Kind != Arr {
		t.Fatalf("expected keyless array, got %+v", nodes[1])
	}

	nodes, err = Parse(`xs[ ]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	items := nodes[0].Items
	if len(items) != 2 || items[0].Kind != Null || items[1].Kind != Null {
		t.Fatalf("expected two keyless nulls, got %+v", items)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		`q="unterminated`,
		`m{a=1`,
		`xs[1 2`,
		`k=\2`,
		`k=\zz`,
		`a=1  b=2}`,
		`a=1=2`,
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Fatalf("expected parse error for %q", in)
			}
		})
	}
}

func TestParseEmptyLine(t *testing.T) {
	nodes, err := Parse("")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func rerender(nodes []Node) string {
	return stakkerlog.SingleLineString(Scan(nodes), "", "")
}

func TestScanRoundTrip(t *testing.T) {
	lines := []string{
		"u64=123456789 str=ABCDEFGHIJ map{b=false}",
		`q="a b" esc="x\22y\5Cz" ctl="a\01b"`,
		`a\20b=1 \20=2`,
		"m{a=1 nested{b=2} empty{}} xs[1 x [true] ] ys[]",
		"gone t=true f=false neg=-7 big=18446744073709551615",
		"k=",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			nodes, err := Parse(line)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got := rerender(nodes); got != line {
				t.Fatalf("round trip changed bytes:\nin:  %q\nout: %q", line, got)
			}
		})
	}
}

// A parsed-then-rendered line is in canonical form: parsing and rendering it
// again must reproduce it byte for byte.
func FuzzParseRenderFixedPoint(f *testing.F) {
	f.Add("u64=123456789 str=ABCDEFGHIJ map{b=false}")
	f.Add(`q="a b" k=007 t=true`)
	f.Add(`a\20b=1 \20=2 gone`)
	f.Add("xs[1 x [true] ] m{}")
	f.Add("k=1e3 f=-0 n=NaN")
	f.Fuzz(func(t *testing.T, line string) {
		nodes, err := Parse(line)
		if err != nil {
			return
		}
		canonical := rerender(nodes)
		nodes2, err := Parse(canonical)
		if err != nil {
			t.Fatalf("canonical form failed to parse: %v\nline: %q\ncanonical: %q", err, line, canonical)
		}
		again := rerender(nodes2)
		if again != canonical {
			t.Fatalf("canonical form is not a fixed point:\nline:      %q\ncanonical: %q\nagain:     %q", line, canonical, again)
		}
	})
}
