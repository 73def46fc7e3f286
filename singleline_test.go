package stakkerlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func scanEmpty(Visitor) {}

func scanSimple(out Visitor) {
	out.U64(K("u64"), 123456789)
	out.Str(K("str"), "ABCDEFGHIJ")
}

func scanSimpleWithMap(out Visitor) {
	out.U64(K("u64"), 123456789)
	out.Str(K("str"), "ABCDEFGHIJ")
	out.Map(K("map"))
	out.Bool(K("b"), false)
	out.MapEnd(K("map"))
}

func scanAll(out Visitor) {
	out.U64(K("u64"), 123456789)
	out.I64(K("i64"), -123456789)
	out.F64(K("f64"), 12345.6789)
	out.Bool(K("b0"), false)
	out.Bool(K("b1"), true)
	out.Null(K("null"))
	out.Str(K("str"), "ABCDEFGHIJ")
	out.Str(K("str_ctrl"), "ABC\tDEF")
	out.Str(K("str_quote"), `ABC"DEF"GHI`)
	out.Str(K("str_bsl"), `ABC\DEF\GHI`)
	out.Fmt(K("fmt"), Lazyf("%s%d%s", "ABC", 123, "DEF"))
	out.Map(K("map"))
	out.U64(K("map_u64"), 987654321)
	out.Str(K("map_str"), "JIHGFEDCBA")
	out.Map(K("map_nested"))
	out.Bool(K("map_nested_bool"), false)
	out.MapEnd(K("map_nested"))
	out.MapEnd(K("map"))
	out.Map(K("map_empty"))
	out.MapEnd(K("map_empty"))
	out.Arr(K("arr"))
	out.U64(NoKey, 987654321)
	out.Str(NoKey, "JIHGFEDCBA")
	out.Arr(NoKey)
	out.Bool(NoKey, true)
	out.ArrEnd(NoKey)
	out.ArrEnd(K("arr"))
	out.Arr(K("arr_empty"))
	out.ArrEnd(K("arr_empty"))
}

const singleLineAll = "u64=123456789 i64=-123456789 f64=12345.6789 b0=false b1=true null " +
	"str=ABCDEFGHIJ str_ctrl=\"ABC\\09DEF\" str_quote=\"ABC\\22DEF\\22GHI\" str_bsl=\"ABC\\5CDEF\\5CGHI\" " +
	"fmt=ABC123DEF map{map_u64=987654321 map_str=JIHGFEDCBA map_nested{map_nested_bool=false}} " +
	"map_empty{} arr[987654321 JIHGFEDCBA [true]] arr_empty[]"

func TestAppendSingleLineSpliceOntoExistingText(t *testing.T) {
	got := AppendSingleLine([]byte("dummy=1"), scanSimpleWithMap, " ", "")
	want := "dummy=1 u64=123456789 str=ABCDEFGHIJ map{b=false}"
	if string(got) != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestAppendSingleLineAllEvents(t *testing.T) {
	got := SingleLineString(scanAll, "", "")
	if got != singleLineAll {
		t.Fatalf("got %q want %q", got, singleLineAll)
	}
}

func TestSingleLineEmptyScan(t *testing.T) {
	if got := AppendSingleLine([]byte("dummy=1"), scanEmpty, " ", ""); string(got) != "dummy=1" {
		t.Fatalf("expected no output for empty scan, got %q", got)
	}
	if got := SingleLineString(scanEmpty, "kv{", "}"); got != "" {
		t.Fatalf("expected suppressed prefix and suffix, got %q", got)
	}
	var buf bytes.Buffer
	if err := WriteSingleLine(&buf, scanEmpty, "kv{", "}"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written, got %q", buf.String())
	}
}

func TestSingleLineSuffix(t *testing.T) {
	got := SingleLineString(scanSimple, "{", "}")
	want := "{u64=123456789 str=ABCDEFGHIJ}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSingleLineEscaping(t *testing.T) {
	cases := []struct {
		name string
		scan ScanFunc
		want string
	}{
		{
			name: "bare value",
			scan: func(out Visitor) { out.Str(K("k"), "plain-value_1") },
			want: "k=plain-value_1",
		},
		{
			name: "empty string value",
			scan: func(out Visitor) { out.Str(K("k"), "") },
			want: "k=",
		},
		{
			name: "space forces quoting",
			scan: func(out Visitor) { out.Str(K("k"), "a b") },
			want: `k="a b"`,
		},
		{
			name: "syntax chars pass verbatim inside quotes",
			scan: func(out Visitor) { out.Str(K("k"), "a={[]}") },
			want: `k="a={[]}"`,
		},
		{
			name: "control quote and backslash escape inside quotes",
			scan: func(out Visitor) { out.Str(K("k"), "a\x01\"\\b") },
			want: `k="a\01\22\5Cb"`,
		},
		{
			name: "empty key placeholder",
			scan: func(out Visitor) { out.Str(K(""), "v") },
			want: `\20=v`,
		},
		{
			name: "reserved bytes in key escaped never quoted",
			scan: func(out Visitor) { out.U64(K("a b=c"), 1) },
			want: `a\20b\3Dc=1`,
		},
		{
			name: "keyed null is the key alone",
			scan: func(out Visitor) { out.Null(K("gone")) },
			want: "gone",
		},
		{
			name: "keyless null in array",
			scan: func(out Visitor) {
				out.Arr(K("xs"))
				out.Null(NoKey)
				out.Null(NoKey)
				out.ArrEnd(K("xs"))
			},
			want: "xs[ ]",
		},
		{
			name: "non-ascii passes through",
			scan: func(out Visitor) { out.Str(K("k"), "räksmörgås") },
			want: "k=räksmörgås",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SingleLineString(tc.scan, "", "")
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestSingleLineSeparators(t *testing.T) {
	scan := func(out Visitor) {
		out.U64(K("a"), 1)
		out.U64(K("b"), 2)
		out.U64(K("c"), 3)
	}
	got := SingleLineString(scan, "", "")
	if got != "a=1 b=2 c=3" {
		t.Fatalf("got %q", got)
	}
	if strings.Count(got, " ") != 2 {
		t.Fatalf("expected exactly 2 separators in %q", got)
	}
}

func TestSingleLineEmptyContainers(t *testing.T) {
	scan := func(out Visitor) {
		out.Map(K("m"))
		out.MapEnd(K("m"))
		out.Arr(K("a"))
		out.ArrEnd(K("a"))
	}
	got := SingleLineString(scan, "", "")
	if got != "m{} a[]" {
		t.Fatalf("got %q want %q", got, "m{} a[]")
	}
}

func TestSingleLineIdempotence(t *testing.T) {
	first := SingleLineString(scanAll, " ", "")
	second := SingleLineString(scanAll, " ", "")
	if first != second {
		t.Fatalf("renders differ:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestWriteSingleLine(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSingleLine(&buf, scanSimpleWithMap, "", ""); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	want := "u64=123456789 str=ABCDEFGHIJ map{b=false}"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

// failWriter rejects every write and counts the attempts.
type failWriter struct {
	calls int
}

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("sink full")
}

func TestWriteSingleLineSinkError(t *testing.T) {
	fw := &failWriter{}
	events := 0
	big := strings.Repeat("x", 5000)
	scan := func(out Visitor) {
		for i := 0; i < 4; i++ {
			out.Str(K("k"), big)
			events++
		}
	}
	err := WriteSingleLine(fw, scan, "", "")
	if err == nil {
		t.Fatalf("expected sink error")
	}
	if events != 4 {
		t.Fatalf("expected traversal to run to completion, got %d events", events)
	}
	if fw.calls != 1 {
		t.Fatalf("expected writes to stop after first failure, got %d calls", fw.calls)
	}
}
