package services

import (
	"context"
	"testing"

	"tilecrm-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyDeduplicatesIgnoringCase(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(newTestDB(t))

	first, created, err := s.CreateCompany(ctx, "Kajaria")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.CreateCompany(ctx, "  kAJARIA ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Kajaria", again.Name)

	_, _, err = s.CreateCompany(ctx, "Somany")
	require.NoError(t, err)

	companies, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Kajaria", companies[0].Name)
	assert.Equal(t, "Somany", companies[1].Name)

	_, _, err = s.CreateCompany(ctx, "   ")
	var verrs utils.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReferencesAreNotDeduplicated(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(newTestDB(t))

	_, err := s.CreateReference(ctx, "Ref1")
	require.NoError(t, err)
	_, err = s.CreateReference(ctx, "ref1")
	require.NoError(t, err)

	refs, err := s.ListReferences(ctx)
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}
