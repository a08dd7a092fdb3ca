package products

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

func testItems() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Sisig", Description: "Sizzling pork sisig", Store: "Manam", Price: 150},
		{ID: 2, Name: "Halo-Halo", Description: "Shaved ice dessert", Store: "Razon's", Price: 99},
		{ID: 3, Name: "Kare-Kare", Description: "Peanut stew with bagoong", Store: "Manam", Price: 320},
		{ID: 4, Name: "Pandesal", Description: "Bread rolls, bag of ten", Store: "Panaderya", Price: 45},
	}
}

func TestFind_NoFilterReturnsAll(t *testing.T) {
	sut := NewCatalog(testItems())

	got := sut.Find(Filter{})

	assert.Len(t, got, 4)
}

func TestFind_StoreFilter(t *testing.T) {
	sut := NewCatalog(testItems())

	got := sut.Find(Filter{Store: "Manam"})

	require.Len(t, got, 2)
	assert.Equal(t, "Sisig", got[0].Name)
	assert.Equal(t, "Kare-Kare", got[1].Name)
}

func TestFind_StoreAllMeansNoConstraint(t *testing.T) {
	sut := NewCatalog(testItems())

	got := sut.Find(Filter{Store: "all"})

	assert.Len(t, got, 4)
}

func TestFind_QueryIsCaseInsensitiveAcrossFields(t *testing.T) {
	sut := NewCatalog(testItems())

	byName := sut.Find(Filter{Query: "sisig"})
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byDescription := sut.Find(Filter{Query: "BAGOONG"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, int64(3), byDescription[0].ID)

	byStore := sut.Find(Filter{Query: "razon"})
	require.Len(t, byStore, 1)
	assert.Equal(t, int64(2), byStore[0].ID)
}

func TestFind_PriceBounds(t *testing.T) {
	sut := NewCatalog(testItems())
	min, max := 90.0, 200.0

	got := sut.Find(Filter{PriceMin: &min, PriceMax: &max})

	require.Len(t, got, 2)
	assert.Equal(t, "Sisig", got[0].Name)
	assert.Equal(t, "Halo-Halo", got[1].Name)
}

func TestFind_ZeroPriceMinIsABound(t *testing.T) {
	sut := NewCatalog(testItems())
	min := 0.0

	got := sut.Find(Filter{PriceMin: &min})

	assert.Len(t, got, 4)
}

func TestFind_Sorting(t *testing.T) {
	sut := NewCatalog(testItems())

	asc := sut.Find(Filter{Sort: SortPriceAsc})
	require.Len(t, asc, 4)
	assert.Equal(t, "Pandesal", asc[0].Name)
	assert.Equal(t, "Kare-Kare", asc[3].Name)

	desc := sut.Find(Filter{Sort: SortPriceDesc})
	assert.Equal(t, "Kare-Kare", desc[0].Name)
	assert.Equal(t, "Pandesal", desc[3].Name)

	byName := sut.Find(Filter{Sort: SortNameAsc})
	assert.Equal(t, "Halo-Halo", byName[0].Name)
	assert.Equal(t, "Sisig", byName[3].Name)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	raw := `[{"id":1,"name":"Sisig","description":"Sizzling","store":"Manam","price":150}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	sut, err := Load(path)

	require.NoError(t, err)
	got := sut.Find(Filter{})
	require.Len(t, got, 1)
	assert.Equal(t, "Sisig", got[0].Name)
	assert.Equal(t, 150.0, got[0].Price)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}
