package instance_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/bipartite"
	"github.com/katalvlaran/lvmatch/bloodtype"
	"github.com/katalvlaran/lvmatch/internal/instance"
	"github.com/katalvlaran/lvmatch/stable"
)

const stableYAML = `
proposers:
  A: [X, Y]
  B: [Y, X]
receivers:
  X: [B, A]
  Y: [A, B]
`

func TestParseStable(t *testing.T) {
	s, err := instance.ParseStable([]byte(stableYAML))
	require.NoError(t, err)
	assert.Equal(t, stable.Preferences{"A": {"X", "Y"}, "B": {"Y", "X"}}, s.Proposers)
	assert.Equal(t, []string{"B", "A"}, s.Receivers["X"])
}

func TestParseStable_Invalid(t *testing.T) {
	for name, src := range map[string]string{
		"empty":     "   \n",
		"no people": "proposers: {}\n",
		"bad yaml":  "proposers: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := instance.ParseStable([]byte(src))
			assert.ErrorIs(t, err, instance.ErrInvalidInstance)
		})
	}
}

func TestLoadStable_RoundTrip(t *testing.T) {
	s, err := instance.ParseStable([]byte(stableYAML))
	require.NoError(t, err)
	data, err := instance.Marshal(s)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stable.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	back, err := instance.LoadStable(path)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = instance.LoadStable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseDonors_TablePredicate(t *testing.T) {
	d, err := instance.ParseDonors([]byte(`
donors:
  - {id: d1, blood_type: O-}
receivers:
  - {id: r1, blood_type: AB+}
  - {id: r2, blood_type: O+}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, d.DonorIDs())
	assert.Equal(t, []string{"r1", "r2"}, d.ReceiverIDs())

	ok, err := d.Predicate(bloodtype.Default())("d1", "r2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseDonors_ExplicitPairs(t *testing.T) {
	d, err := instance.ParseDonors([]byte(`
donors: [{id: "1"}, {id: "2"}]
receivers: [{id: "3"}, {id: "4"}]
compatible:
  - ["1", "3"]
  - ["2", "4"]
`))
	require.NoError(t, err)
	pred := d.Predicate(bloodtype.Default())

	ok, err := pred("1", "3")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = pred("1", "4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseDonors_BadPair(t *testing.T) {
	_, err := instance.ParseDonors([]byte("donors: []\ncompatible:\n  - [a, b, c]\n"))
	assert.ErrorIs(t, err, instance.ErrInvalidInstance)
}

func TestParseDonors_UnknownCompatibleID(t *testing.T) {
	for name, pairs := range map[string]string{
		"unknown donor":     `[["7", "3"]]`,
		"unknown receiver":  `[["1", "9"]]`,
		"receiver as donor": `[["3", "3"]]`,
		"donor as receiver": `[["1", "1"]]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := instance.ParseDonors([]byte(`
donors: [{id: "1"}]
receivers: [{id: "3"}]
compatible: ` + pairs + "\n"))
			assert.ErrorIs(t, err, instance.ErrInvalidInstance)
		})
	}
}

// TestParseDonors_SharedLabel: a label used on both sides keeps each
// side's blood type when the predicate resolves it.
func TestParseDonors_SharedLabel(t *testing.T) {
	d, err := instance.ParseDonors([]byte(`
donors: [{id: x, blood_type: AB+}]
receivers: [{id: x, blood_type: O-}]
`))
	require.NoError(t, err)

	res, err := bipartite.MaximumMatching(d.DonorIDs(), d.ReceiverIDs(), d.Predicate(bloodtype.Default()))
	require.NoError(t, err)
	assert.Zero(t, res.Size)
	assert.Equal(t, []string{"x"}, res.UnmatchedDonors)
	assert.Equal(t, []string{"x"}, res.UnmatchedReceivers)
}
