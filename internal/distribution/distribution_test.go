package distribution

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Han-16/msmbench/internal/randutil"
)

// smallProfile keeps the shape of DefaultProfile at a thousandth of the size.
func smallProfile() Profile {
	p := DefaultProfile()
	p.Specials[0].Count = 150
	p.Specials[1].Count = 50
	p.Tiers = []Tier{
		{Name: "high", Values: Range{20, 30}, Repeats: Range{40, 80}},
		{Name: "low", Values: Range{190, 210}, Repeats: Range{2, 4}},
	}
	p.MinLen = 1 << 13
	return p
}

type run struct {
	value fr.Element
	len   int
}

func runs(buf []fr.Element) []run {
	var out []run
	for i := range buf {
		if len(out) > 0 && out[len(out)-1].value.Equal(&buf[i]) {
			out[len(out)-1].len++
			continue
		}
		out = append(out, run{value: buf[i], len: 1})
	}
	return out
}

func counts(buf []fr.Element) map[fr.Element]int {
	m := make(map[fr.Element]int)
	for _, v := range buf {
		m[v]++
	}
	return m
}

// checkLayout verifies an unshuffled buffer tier by tier.
func checkLayout(t *testing.T, buf []fr.Element, stats Stats, p Profile) {
	t.Helper()
	rs := runs(buf)
	require.Len(t, stats.Tiers, len(p.Specials)+len(p.Tiers))

	k := 0
	for i, s := range p.Specials {
		require.True(t, rs[k].value.Equal(&s.Value), "special %s", s.Name)
		require.Equal(t, s.Count, rs[k].len, "special %s", s.Name)
		require.Equal(t, s.Count, stats.Tiers[i].Entries)
		k++
	}
	for i, tier := range p.Tiers {
		ts := stats.Tiers[len(p.Specials)+i]
		require.Equal(t, tier.Name, ts.Name)
		require.GreaterOrEqual(t, ts.Distinct, tier.Values.Min, "tier %s", tier.Name)
		require.Less(t, ts.Distinct, tier.Values.Max, "tier %s", tier.Name)

		entries := 0
		for j := 0; j < ts.Distinct; j++ {
			require.GreaterOrEqual(t, rs[k].len, tier.Repeats.Min, "tier %s value %d", tier.Name, j)
			require.Less(t, rs[k].len, tier.Repeats.Max, "tier %s value %d", tier.Name, j)
			entries += rs[k].len
			k++
		}
		require.Equal(t, ts.Entries, entries, "tier %s", tier.Name)
	}

	// fill values are unique
	fill := 0
	for ; k < len(rs); k++ {
		require.Equal(t, 1, rs[k].len)
		fill++
	}
	require.Equal(t, stats.Fill, fill)
}

func TestGenerateUnshuffledLayout(t *testing.T) {
	p := smallProfile()
	n := p.MinLen
	buf, stats, err := generate(randutil.NewRand(1), n, p, false)
	require.NoError(t, err)
	require.Len(t, buf, n)
	require.Equal(t, n, stats.Total())

	checkLayout(t, buf, stats, p)
}

func TestGenerateSameSeedSameMultiset(t *testing.T) {
	p := smallProfile()
	a, sa, err := generate(randutil.NewRand(9), p.MinLen, p, false)
	require.NoError(t, err)
	b, sb, err := generate(randutil.NewRand(9), p.MinLen, p, false)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	assert.Equal(t, counts(a), counts(b))
}

func TestGenerateShuffledKeepsMultiset(t *testing.T) {
	p := smallProfile()
	n := p.MinLen + 1000
	raw, _, err := generate(randutil.NewRand(4), n, p, false)
	require.NoError(t, err)
	shuffled, _, err := Generate(randutil.NewRand(4), n, p)
	require.NoError(t, err)

	require.Len(t, shuffled, n)
	assert.NotEqual(t, raw, shuffled)

	c := counts(shuffled)
	var zero, one fr.Element
	one.SetOne()
	assert.Equal(t, 150, c[zero])
	assert.Equal(t, 50, c[one])

	// values and frequencies match the unshuffled run of the same seed, since
	// shuffling only consumes randomness after every value has been drawn
	assert.Equal(t, counts(raw), c)
}

func TestGenerateSeedsDiffer(t *testing.T) {
	p := smallProfile()
	a, _, err := Generate(randutil.NewRand(1), p.MinLen, p)
	require.NoError(t, err)
	b, _, err := Generate(randutil.NewRand(2), p.MinLen, p)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateClampsToLength(t *testing.T) {
	var one fr.Element
	one.SetOne()
	p := Profile{
		Specials: []Special{
			{Name: "one", Value: one, Count: 100},
			{Name: "zero", Count: 0},
		},
		Tiers: []Tier{
			{Name: "big", Values: Range{5, 6}, Repeats: Range{50, 51}},
			{Name: "starved", Values: Range{3, 4}, Repeats: Range{10, 11}},
		},
		MinLen: 100,
	}
	buf, stats, err := generate(randutil.NewRand(3), 150, p, false)
	require.NoError(t, err)
	require.Len(t, buf, 150)

	want := []TierStats{
		{Name: "one", Distinct: 1, Entries: 100},
		{Name: "zero", Distinct: 0, Entries: 0},
		// only the first of five values fits
		{Name: "big", Distinct: 1, Entries: 50},
		{Name: "starved", Distinct: 0, Entries: 0},
	}
	assert.Equal(t, want, stats.Tiers)
	assert.Equal(t, 0, stats.Fill)
}

func TestGenerateInvalidInput(t *testing.T) {
	_, _, err := NonUniform(randutil.NewRand(1), MinLen-1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = NonUniform(randutil.NewRand(1), 1024)
	require.ErrorIs(t, err, ErrInvalidInput)

	p := smallProfile()
	_, _, err = Generate(randutil.NewRand(1), p.MinLen-1, p)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfileValidate(t *testing.T) {
	require.NoError(t, DefaultProfile().Validate())

	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"empty values range", func(p *Profile) { p.Tiers[0].Values = Range{300, 300} }},
		{"inverted repeats", func(p *Profile) { p.Tiers[1].Repeats = Range{400, 200} }},
		{"zero repeats", func(p *Profile) { p.Tiers[1].Repeats = Range{0, 2} }},
		{"negative special", func(p *Profile) { p.Specials[0].Count = -1 }},
		{"min below specials", func(p *Profile) { p.MinLen = 1000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			require.ErrorIs(t, p.Validate(), ErrInvalidInput)
		})
	}
}

func TestNonUniformDefaultProfile(t *testing.T) {
	if testing.Short() {
		t.Skip("generates 2^23 scalars")
	}
	p := DefaultProfile()

	raw, stats, err := generate(randutil.NewRand(2024), MinLen, p, false)
	require.NoError(t, err)
	require.Len(t, raw, 8_388_608)
	require.Equal(t, 8_388_608, stats.Total())

	var zero, one fr.Element
	one.SetOne()
	for i := 0; i < 150_000; i++ {
		require.True(t, raw[i].Equal(&zero), "index %d", i)
	}
	for i := 150_000; i < 200_000; i++ {
		require.True(t, raw[i].Equal(&one), "index %d", i)
	}
	checkLayout(t, raw, stats, p)

	shuffled, _, err := NonUniform(randutil.NewRand(2024), MinLen)
	require.NoError(t, err)
	require.Len(t, shuffled, MinLen)
	zeros, ones := 0, 0
	for i := range shuffled {
		switch {
		case shuffled[i].IsZero():
			zeros++
		case shuffled[i].IsOne():
			ones++
		}
	}
	assert.Equal(t, 150_000, zeros)
	assert.Equal(t, 50_000, ones)
	leading := 0
	for leading < len(shuffled) && shuffled[leading].IsZero() {
		leading++
	}
	assert.Less(t, leading, 100)
}
