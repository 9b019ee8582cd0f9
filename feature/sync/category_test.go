package sync

import (
	"context"
	"fmt"
	"testing"

	"catalog-sync/feature/remote"
	"catalog-sync/feature/source"

	"github.com/stretchr/testify/assert"
)

func toolsPath() []source.PathLevel {
	return []source.PathLevel{
		{Code: "1", Name: "Tools"},
		{Code: "10", Name: "Hand Tools"},
		{Code: "100", Name: "Hammers"},
	}
}

func TestResolveCategoryCreatesMissingLevels(t *testing.T) {
	rc := newMockRemote()
	rc.categories = []remote.Category{{ID: 5, Name: "Tools", Parent: 0}}
	e := newTestEngine(t, rc)

	id, err := e.resolveCategory(context.Background(), toolsPath())
	assert.NoError(t, err)

	// The root level matched the existing remote category; the two missing
	// levels were created under it.
	assert.Len(t, rc.createdCats, 2)
	assert.Equal(t, "Hand Tools", rc.createdCats[0].Name)
	assert.Equal(t, int64(5), rc.createdCats[0].Parent)
	assert.Equal(t, "Hammers", rc.createdCats[1].Name)
	assert.Equal(t, rc.createdCats[0].ID, rc.createdCats[1].Parent)
	assert.Equal(t, rc.createdCats[1].ID, id)
}

func TestResolveCategoryMatchesCaseInsensitively(t *testing.T) {
	rc := newMockRemote()
	rc.categories = []remote.Category{{ID: 5, Name: "TOOLS", Parent: 0}}
	e := newTestEngine(t, rc)

	id, err := e.resolveCategory(context.Background(), []source.PathLevel{{Code: "1", Name: "tools"}})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Empty(t, rc.createdCats)
}

func TestResolveCategoryReusesPersistedMapping(t *testing.T) {
	rc := newMockRemote()
	e := newTestEngine(t, rc)

	first, err := e.resolveCategory(context.Background(), toolsPath())
	assert.NoError(t, err)
	creations := len(rc.createdCats)

	second, err := e.resolveCategory(context.Background(), toolsPath())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	// The second resolution is answered from the mapping, with no new
	// creations and no extra listing calls.
	assert.Len(t, rc.createdCats, creations)
	assert.Equal(t, 1, rc.listCalls)
}

func TestResolveCategoryNeverDuplicatesAcrossManyItems(t *testing.T) {
	rc := newMockRemote()
	e := newTestEngine(t, rc)

	for i := 0; i < 100; i++ {
		_, err := e.resolveCategory(context.Background(), toolsPath())
		assert.NoError(t, err)
	}

	assert.Len(t, rc.createdCats, 3)
}

func TestResolveCategorySharedPrefixesResolveOnce(t *testing.T) {
	rc := newMockRemote()
	e := newTestEngine(t, rc)

	for i := 0; i < 5; i++ {
		path := []source.PathLevel{
			{Code: "1", Name: "Tools"},
			{Code: fmt.Sprintf("1%d", i), Name: fmt.Sprintf("Sub %d", i)},
		}
		_, err := e.resolveCategory(context.Background(), path)
		assert.NoError(t, err)
	}

	// One root plus five children.
	assert.Len(t, rc.createdCats, 6)
}

func TestResolveCategoryEmptyPath(t *testing.T) {
	e := newTestEngine(t, newMockRemote())
	id, err := e.resolveCategory(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

func TestCategoryIndexKeepsFirstDuplicate(t *testing.T) {
	rc := newMockRemote()
	rc.categories = []remote.Category{
		{ID: 5, Name: "Tools", Parent: 0},
		{ID: 9, Name: "tools ", Parent: 0},
	}
	e := newTestEngine(t, rc)

	id, err := e.resolveCategory(context.Background(), []source.PathLevel{{Code: "1", Name: "Tools"}})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestMappingKey(t *testing.T) {
	assert.Equal(t, "1_10_100", mappingKey(toolsPath()))
	assert.Equal(t, "1", mappingKey(toolsPath()[:1]))
	assert.Equal(t, "", mappingKey(nil))
}
