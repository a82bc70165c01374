package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipo-exit-planner/internal/model"
)

func TestDefaultTableIsValid(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, len(DefaultJurisdictions()), table.Len())
	assert.True(t, table.Has(DefaultOrigin))
	assert.True(t, table.Has(DefaultDestination))

	for _, p := range table.All() {
		assert.NoErrorf(t, p.Validate(), "jurisdiction %s", p.Code)
	}
}

func TestTableGet(t *testing.T) {
	table := DefaultTable()

	ca, err := table.Get(" ca ")
	require.NoError(t, err)
	assert.Equal(t, "CA", ca.Code)
	assert.Equal(t, "California", ca.Name)
	assert.True(t, ca.TopRate().Equal(ca.Brackets[len(ca.Brackets)-1].Rate))

	wa, err := table.Get("WA")
	require.NoError(t, err)
	assert.Empty(t, wa.Brackets)

	_, err = table.Get("ZZ")
	assert.ErrorContains(t, err, "unknown jurisdiction")
	assert.ErrorContains(t, err, "CA, FL")
}

func TestTableOrdering(t *testing.T) {
	codes := DefaultTable().Codes()
	assert.Equal(t, []string{"CA", "FL", "NV", "NY", "OR", "TX", "WA"}, codes)
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	p := profile("ca", "California", nil)
	_, err := NewTable([]model.JurisdictionProfile{p, profile("CA", "Again", nil)})
	assert.ErrorContains(t, err, "duplicate")
}

func TestNewTableRejectsInvalid(t *testing.T) {
	bad := profile("XX", "Bad", brackets("100", "0.1"))
	_, err := NewTable([]model.JurisdictionProfile{bad})
	assert.ErrorContains(t, err, "must start at 0")
}
