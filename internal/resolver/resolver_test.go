package resolver

import (
	"context"
	"testing"

	"uploader/internal/database"
	"uploader/internal/models"
	"uploader/internal/store"
	"uploader/internal/woocommerce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommerce struct {
	skus  map[string]int64
	attrs []woocommerce.Attribute
}

func (f *fakeCommerce) ProductIDBySKU(_ context.Context, sku string) (int64, error) {
	return f.skus[sku], nil
}

func (f *fakeCommerce) Attributes(_ context.Context) ([]woocommerce.Attribute, error) {
	return f.attrs, nil
}

func newTestResolver(t *testing.T) (*Resolver, *store.Store, *fakeCommerce) {
	t.Helper()
	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.New(db.DB)
	api := &fakeCommerce{skus: map[string]int64{}}
	return New(st, api), st, api
}

func TestTermIDBySlug(t *testing.T) {
	r, st, _ := newTestResolver(t)

	rec, err := st.InsertTerm(models.TaxonomyCategory, "Albums", "albums", "")
	require.NoError(t, err)

	id, err := r.TermIDBySlug(models.TaxonomyCategory, "albums")
	require.NoError(t, err)
	assert.Equal(t, rec.TermID, id)

	// Same slug in another taxonomy does not resolve.
	_, err = r.TermIDBySlug(models.TaxonomyTag, "albums")
	assert.True(t, IsNotFound(err))
}

func TestProductIDsForSKUs(t *testing.T) {
	r, _, api := newTestResolver(t)
	api.skus["A1"] = 10

	ids, err := r.ProductIDsForSKUs(context.Background(), []string{"A1", "missing"})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 0}, ids)
}

func TestImageIDByName(t *testing.T) {
	r, st, _ := newTestResolver(t)

	require.NoError(t, st.SaveAttachment(&models.Attachment{FileName: "cover.jpg"}))

	id, err := r.ImageIDByName("cover.jpg")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = r.ImageIDByName("missing.jpg")
	assert.True(t, IsNotFound(err))
}

func TestAttributeIDBySlug(t *testing.T) {
	attrs := []woocommerce.Attribute{
		{ID: 5, Name: "Color", Slug: "pa_color"},
		{ID: 6, Name: "Size", Slug: "size"},
	}

	id, ok := AttributeIDBySlug(attrs, "color")
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	// Unprefixed upstream slugs still match.
	id, ok = AttributeIDBySlug(attrs, "size")
	assert.True(t, ok)
	assert.Equal(t, int64(6), id)

	_, ok = AttributeIDBySlug(attrs, "material")
	assert.False(t, ok)
}

func TestTranslatedElementID(t *testing.T) {
	r, st, _ := newTestResolver(t)

	parent, err := st.EnsureTranslation(models.ElementProduct, 10, "en")
	require.NoError(t, err)
	require.NoError(t, st.SaveTranslation(&models.Translation{
		ElementType:        models.ElementProduct,
		ElementID:          20,
		TRID:               parent.TRID,
		LanguageCode:       "nl",
		SourceLanguageCode: "en",
	}))

	id, err := r.TranslatedElementID(models.ElementProduct, 10, "nl")
	require.NoError(t, err)
	assert.Equal(t, int64(20), id)

	_, err = r.TranslatedElementID(models.ElementProduct, 10, "fr")
	assert.True(t, IsNotFound(err))
}
