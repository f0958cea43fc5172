package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncmarket/catalog-service/internal/types"
)

// fakeStore is an in-memory Store with per-call error injection hooks.
type fakeStore struct {
	products   map[string]*NewProduct // keyed by SKU
	brands     map[string]string      // name -> id
	categories map[string]string      // name -> id
	nextID     int

	brandCreates    int
	categoryCreates int

	createProductErr func(p *NewProduct) error
	createBrandErr   func(name string) error
	onCreateProduct  func(p *NewProduct)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   make(map[string]*NewProduct),
		brands:     make(map[string]string),
		categories: make(map[string]string),
	}
}

func (s *fakeStore) id() string {
	s.nextID++
	return fmt.Sprintf("id-%d", s.nextID)
}

func (s *fakeStore) ProductIDBySKU(ctx context.Context, sku string) (string, error) {
	if _, ok := s.products[sku]; ok {
		return "existing-" + sku, nil
	}
	return "", nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, p *NewProduct) (string, error) {
	if s.onCreateProduct != nil {
		s.onCreateProduct(p)
	}
	if s.createProductErr != nil {
		if err := s.createProductErr(p); err != nil {
			return "", err
		}
	}
	s.products[p.SKU] = p
	return s.id(), nil
}

func (s *fakeStore) Brands(ctx context.Context) ([]EntityRef, error) {
	return entityRefs(s.brands), nil
}

func (s *fakeStore) Categories(ctx context.Context) ([]EntityRef, error) {
	return entityRefs(s.categories), nil
}

func (s *fakeStore) CreateBrand(ctx context.Context, name, slug string) (string, error) {
	if s.createBrandErr != nil {
		if err := s.createBrandErr(name); err != nil {
			return "", err
		}
	}
	s.brandCreates++
	id := s.id()
	s.brands[name] = id
	return id, nil
}

func (s *fakeStore) CreateCategory(ctx context.Context, name, slug string) (string, error) {
	s.categoryCreates++
	id := s.id()
	s.categories[name] = id
	return id, nil
}

func entityRefs(m map[string]string) []EntityRef {
	refs := make([]EntityRef, 0, len(m))
	for name, id := range m {
		refs = append(refs, EntityRef{ID: id, Name: name})
	}
	return refs
}

func TestFormat(t *testing.T) {
	tests := []struct {
		filename string
		format   types.FileFormat
		ok       bool
	}{
		{"catalog.csv", types.FormatDelimited, true},
		{"catalog.tsv", types.FormatDelimited, true},
		{"catalog.txt", types.FormatDelimited, true},
		{"catalog.XML", types.FormatXML, true},
		{"catalog.json", types.FormatJSON, true},
		{"catalog.xlsx", types.FormatXLSX, true},
		{"dir/catalog.Csv", types.FormatDelimited, true},
		{"catalog.pdf", "", false},
		{"catalog", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, ok := Format(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestImportFileCSV(t *testing.T) {
	store := newFakeStore()
	svc := New(store, 0, "")

	content := []byte("sku,name,price,brand,categories,stockCount\n" +
		"CNC-1001,Sigma Profil 40x40,250.00,Sigma,\"Sigma Profil,Bağlantı Parçaları\",25\n" +
		"CNC-1002,Step Motor,890.50,Nema,Motorlar,0\n")

	result, err := svc.ImportFile(context.Background(), "catalog.csv", content)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	p := store.products["CNC-1001"]
	require.NotNil(t, p)
	assert.Equal(t, "sigma-profil-40x40-cnc-1001", p.Slug)
	assert.Equal(t, 250.00, p.Price)
	assert.Equal(t, "TRY", p.Currency)
	assert.Equal(t, 25, p.StockCount)
	assert.True(t, p.InStock)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.BrandID)
	assert.Len(t, p.CategoryIDs, 2)

	// quoted cell yields two category names, one brand each row
	assert.Equal(t, 2, store.brandCreates)
	assert.Equal(t, 3, store.categoryCreates)

	// zero stock count is out of stock
	assert.False(t, store.products["CNC-1002"].InStock)
}

func TestImportFileIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := New(store, 0, "")
	content := []byte("sku,name\nCNC-1001,Profil\nCNC-1002,Motor\n")
	ctx := context.Background()

	first, err := svc.ImportFile(ctx, "catalog.csv", content)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := svc.ImportFile(ctx, "catalog.csv", content)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)
	assert.Empty(t, second.Errors)
	assert.Len(t, store.products, 2)
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	svc := New(newFakeStore(), 0, "")

	result, err := svc.ImportFile(context.Background(), "catalog.pdf", []byte("whatever"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportFileNoRows(t *testing.T) {
	svc := New(newFakeStore(), 0, "")

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"header only", "catalog.csv", "sku,name\n"},
		{"all rows dropped", "catalog.csv", "sku,name\n,NoSKU\n"},
		{"empty xml", "catalog.xml", "<Products></Products>"},
		{"invalid json", "catalog.json", "{broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ImportFile(context.Background(), tt.filename, []byte(tt.content))
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrNoRows)
		})
	}
}

func TestImportFileRowIsolation(t *testing.T) {
	store := newFakeStore()
	store.createProductErr = func(p *NewProduct) error {
		if p.SKU == "CNC-BAD" {
			return errors.New("constraint violation")
		}
		return nil
	}
	svc := New(store, 0, "")

	content := []byte("sku,name\nCNC-0001,First\nCNC-BAD,Broken\nCNC-0002,Third\n")
	result, err := svc.ImportFile(context.Background(), "catalog.csv", content)
	require.NoError(t, err)

	// the failing row never blocks the ones after it
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "CNC-BAD", result.Errors[0].SKU)
	assert.Contains(t, result.Errors[0].Message, "constraint violation")
	assert.NotNil(t, store.products["CNC-0002"])
}

func TestImportFileResultInvariant(t *testing.T) {
	store := newFakeStore()
	store.products["CNC-0002"] = &NewProduct{SKU: "CNC-0002"}
	store.createProductErr = func(p *NewProduct) error {
		if p.SKU == "CNC-0003" {
			return errors.New("boom")
		}
		return nil
	}
	svc := New(store, 0, "")

	content := []byte("sku,name\nCNC-0001,A\nCNC-0002,B\nCNC-0003,C\nCNC-0004,D\n")
	result, err := svc.ImportFile(context.Background(), "catalog.csv", content)
	require.NoError(t, err)

	// every accepted row lands in exactly one bucket
	assert.Equal(t, 4, result.Created+result.Skipped+len(result.Errors))
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportFileCancellationReturnsPartialResult(t *testing.T) {
	store := newFakeStore()
	ctx, cancel := context.WithCancel(context.Background())
	store.onCreateProduct = func(p *NewProduct) {
		if p.SKU == "CNC-0002" {
			cancel()
		}
	}
	svc := New(store, 0, "")

	content := []byte("sku,name\nCNC-0001,A\nCNC-0002,B\nCNC-0003,C\nCNC-0004,D\n")
	result, err := svc.ImportFile(ctx, "catalog.csv", content)
	require.NoError(t, err)

	// the row in flight finishes, later rows are never started
	assert.Equal(t, 2, result.Created)
	assert.Nil(t, store.products["CNC-0003"])
	assert.Nil(t, store.products["CNC-0004"])
}

func TestImportFileFormatEquivalence(t *testing.T) {
	csvContent := []byte("sku,name,price,brand,categories,attributes\n" +
		"CNC-1001,Sigma Profil,250.00,Sigma,\"Profiller,Mekanik\",Uzunluk:2m|Malzeme:Alüminyum\n")

	xmlContent := []byte(`<Product>
  <SKU>CNC-1001</SKU>
  <Name>Sigma Profil</Name>
  <Price>250.00</Price>
  <Brand>Sigma</Brand>
  <Categories><Category>Profiller</Category><Category>Mekanik</Category></Categories>
  <Attributes><Attribute name="Uzunluk">2m</Attribute><Attribute name="Malzeme">Alüminyum</Attribute></Attributes>
</Product>`)

	jsonContent := []byte(`[{
  "sku": "CNC-1001",
  "name": "Sigma Profil",
  "price": "250.00",
  "brand": "Sigma",
  "categories": "Profiller,Mekanik",
  "attributes": "Uzunluk:2m|Malzeme:Alüminyum"
}]`)

	var products []*NewProduct
	for _, tc := range []struct {
		filename string
		content  []byte
	}{
		{"catalog.csv", csvContent},
		{"catalog.xml", xmlContent},
		{"catalog.json", jsonContent},
	} {
		store := newFakeStore()
		svc := New(store, 0, "")
		result, err := svc.ImportFile(context.Background(), tc.filename, tc.content)
		require.NoError(t, err, tc.filename)
		require.Equal(t, 1, result.Created, tc.filename)
		products = append(products, store.products["CNC-1001"])
	}

	// all three formats must produce the same product
	for _, p := range products[1:] {
		assert.Equal(t, products[0].Name, p.Name)
		assert.Equal(t, products[0].Price, p.Price)
		assert.Equal(t, products[0].Slug, p.Slug)
		assert.Equal(t, products[0].Attributes, p.Attributes)
		assert.Len(t, p.CategoryIDs, 2)
	}
}

func TestImportFileCustomCurrencyAndBatchSize(t *testing.T) {
	store := newFakeStore()
	svc := New(store, 3, "EUR")

	content := []byte("sku,name\nA-1,One\nA-2,Two\nA-3,Three\nA-4,Four\n")
	result, err := svc.ImportFile(context.Background(), "catalog.csv", content)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Created)
	assert.Equal(t, "EUR", store.products["A-1"].Currency)
}
