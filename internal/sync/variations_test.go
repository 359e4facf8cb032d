package sync

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"uploader/internal/database"
	"uploader/internal/models"
	"uploader/internal/store"
	"uploader/internal/translations"
	"uploader/internal/woocommerce"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variationFixture(api *fakeCommerce) {
	api.attrs = []woocommerce.Attribute{{ID: 5, Name: "Color", Slug: "pa_color"}}
	api.attrTerms[5] = []woocommerce.AttributeTerm{{ID: 51, Name: "Red"}, {ID: 52, Name: "Blue"}}
	api.skus["P1"] = 10
	api.products[10] = &woocommerce.Product{
		ID:  10,
		SKU: "P1",
		Attributes: []woocommerce.ProductAttribute{
			{ID: 5, Slug: "pa_color", Options: []string{"Red"}},
		},
	}
}

func TestVariationsCreateAndUpdate(t *testing.T) {
	s, api, _ := newTestSyncer(t)
	variationFixture(api)
	api.skus["P1-V2"] = 20

	batch := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "P1",
		Variations: []models.VariationItem{
			{SKU: "P1-V1", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
			{SKU: "P1-V2", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})

	require.Len(t, batch.Items, 2)
	assert.Equal(t, models.ActionCreated, batch.Items[0].Action)
	assert.Equal(t, models.ActionModified, batch.Items[1].Action)
	assert.Equal(t, http.StatusOK, batch.StatusCode())
}

func TestVariationsUnknownParentProduct(t *testing.T) {
	s, api, _ := newTestSyncer(t)
	variationFixture(api)

	batch := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "NOPE",
		Variations: []models.VariationItem{
			{SKU: "V1", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})

	require.Len(t, batch.Items, 1)
	assert.Equal(t, models.StatusError, batch.Items[0].Status)
	assert.Equal(t, "Product NOPE not found", batch.Items[0].Message)
}

func TestVariationsTermFetchFailureIsLogged(t *testing.T) {
	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := store.New(db.DB)

	api := newFakeCommerce()
	variationFixture(api)
	api.attrTermsErr = map[int64]error{5: errors.New("upstream timeout")}

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	hook := logtest.NewLocal(log)

	s := New(st, api, translations.New(st, "en"), t.TempDir(), log)

	batch := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "P1",
		Variations: []models.VariationItem{
			{SKU: "V1", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})

	require.Len(t, batch.Items, 1)
	assert.Equal(t, "Attribute term Red not found", batch.Items[0].Message)

	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && e.Data["attribute"] == "pa_color" {
			logged = true
		}
	}
	assert.True(t, logged, "expected a debug entry for the skipped attribute")
}

func TestVariationsOptionValidation(t *testing.T) {
	s, api, _ := newTestSyncer(t)
	variationFixture(api)

	batch := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "P1",
		Variations: []models.VariationItem{
			{SKU: "V1", Attributes: []models.VariationAttribute{{Slug: "size", Option: "Red"}}},
			{SKU: "V2", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Green"}}},
			{SKU: "V3", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Blue"}}},
			{SKU: "V4", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})

	require.Len(t, batch.Items, 4)
	assert.Equal(t, "Attribute size not found", batch.Items[0].Message)
	assert.Equal(t, "Attribute term Green not found", batch.Items[1].Message)
	assert.Equal(t, "Attribute term Blue is not defined as a term for product SKU P1", batch.Items[2].Message)
	assert.Equal(t, models.StatusSuccess, batch.Items[3].Status)
	assert.Equal(t, http.StatusMultiStatus, batch.StatusCode())
}

func TestVariationTranslationNeedsDefaultVariation(t *testing.T) {
	s, api, _ := newTestSyncer(t)
	variationFixture(api)

	batch := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "P1",
		Variations: []models.VariationItem{
			{SKU: "V1", Lang: "nl", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})

	require.Len(t, batch.Items, 1)
	assert.Equal(t, models.StatusError, batch.Items[0].Status)
	assert.Contains(t, batch.Items[0].Message, "Parent variation not found")
}

func TestVariationTranslationLinksGroup(t *testing.T) {
	s, api, st := newTestSyncer(t)
	variationFixture(api)
	api.skus["P1-V1"] = 30

	// Default-language variation registers the group.
	first := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "P1",
		Variations: []models.VariationItem{
			{SKU: "P1-V1", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})
	require.Equal(t, http.StatusOK, first.StatusCode())

	second := s.Variations(context.Background(), []models.VariationBatch{{
		ParentProductSKU: "P1",
		Variations: []models.VariationItem{
			{SKU: "P1-V1", Lang: "nl", Attributes: []models.VariationAttribute{{Slug: "color", Option: "Red"}}},
		},
	}})
	require.Equal(t, http.StatusOK, second.StatusCode())
	assert.Equal(t, models.ActionCreated, second.Items[0].Action)

	parentRow, err := st.TranslationRow(models.ElementVariation, 30)
	require.NoError(t, err)
	childRow, err := st.TranslationRow(models.ElementVariation, second.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, parentRow.TRID, childRow.TRID)
}
