package template

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/enumtext/pkg/core"
)

// ignorePos compares segments by meaning only.
var ignorePos = cmpopts.IgnoreFields(core.Segment{}, "Pos", "Raw")

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []core.Segment
	}{
		{"empty", "", nil},
		{"literal only", "hello unit", []core.Segment{core.Literal("hello unit")}},
		{"named", "hello {message}", []core.Segment{
			core.Literal("hello "),
			core.Placeholder(core.Name("message"), core.FormatDefault),
		}},
		{"positional", "hello {0} {1}", []core.Segment{
			core.Literal("hello "),
			core.Placeholder(core.Index(0), core.FormatDefault),
			core.Literal(" "),
			core.Placeholder(core.Index(1), core.FormatDefault),
		}},
		{"structured and hex", "Unnamed error: {0:?}, {1}, 0x{2:0x}", []core.Segment{
			core.Literal("Unnamed error: "),
			core.Placeholder(core.Index(0), core.FormatStructured),
			core.Literal(", "),
			core.Placeholder(core.Index(1), core.FormatDefault),
			core.Literal(", 0x"),
			core.Placeholder(core.Index(2), core.FormatHex),
		}},
		{"escaped braces merge into one literal", "a {{b}} c", []core.Segment{
			core.Literal("a {b} c"),
		}},
		{"escape next to placeholder", "{{{x}}}", []core.Segment{
			core.Literal("{"),
			core.Placeholder(core.Name("x"), core.FormatDefault),
			core.Literal("}"),
		}},
		{"empty spec is default", "{0:}", []core.Segment{
			core.Placeholder(core.Index(0), core.FormatDefault),
		}},
		{"leading zeros", "{007}", []core.Segment{
			core.Placeholder(core.Index(7), core.FormatDefault),
		}},
		{"index too large for int saturates", "{99999999999999999999999}", []core.Segment{
			core.Placeholder(core.Index(math.MaxInt), core.FormatDefault),
		}},
		{"underscore identifier", "{_raw_1:?}", []core.Segment{
			core.Placeholder(core.Name("_raw_1"), core.FormatStructured),
		}},
		{"unicode text and names", "ação {número}", []core.Segment{
			core.Literal("ação "),
			core.Placeholder(core.Name("número"), core.FormatDefault),
		}},
		{"repeated placeholder", "{a}{a}", []core.Segment{
			core.Placeholder(core.Name("a"), core.FormatDefault),
			core.Placeholder(core.Name("a"), core.FormatDefault),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, ignorePos); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}

func TestParse_Positions(t *testing.T) {
	segs, err := Parse("ab{x:?}cd")
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, 0, segs[0].Pos)
	assert.Equal(t, 2, segs[1].Pos)
	assert.Equal(t, "{x:?}", segs[1].Raw)
	assert.Equal(t, 7, segs[2].Pos)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  int
	}{
		{"unterminated", "hello {name", 6},
		{"unterminated at end", "hello {", 6},
		{"empty reference", "x {} y", 2},
		{"empty reference with spec", "{:?}", 0},
		{"unknown spec", "{0:x}", 0},
		{"width is not supported", "{0:>8}", 0},
		{"alternate debug", "{0:#?}", 0},
		{"malformed reference", "{1a}", 0},
		{"space in reference", "{ name }", 0},
		{"nested open brace", "{a{b}", 0},
		{"stray close brace", "ab}c", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			segs, err := Parse(tc.src)
			require.Error(t, err)
			assert.Nil(t, segs)
			assert.True(t, errors.Is(err, core.ErrSyntax), "want ErrSyntax, got %v", err)

			var ce *core.CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.pos, ce.Pos)
		})
	}
}

func TestPlaceholders(t *testing.T) {
	segs, err := Parse("a {0} b {1:0x}")
	require.NoError(t, err)

	ph := Placeholders(segs)
	require.Len(t, ph, 2)
	assert.Equal(t, core.Index(1), ph[1].Ref)
	assert.Equal(t, core.FormatHex, ph[1].Format)
}
