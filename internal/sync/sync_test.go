package sync

import (
	"context"
	"fmt"
	"io"
	"testing"

	"uploader/internal/database"
	"uploader/internal/store"
	"uploader/internal/translations"
	"uploader/internal/woocommerce"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeCommerce is an in-memory stand-in for the upstream catalog API.
type fakeCommerce struct {
	attrs        []woocommerce.Attribute
	attrsErr     error
	attrTerms    map[int64][]woocommerce.AttributeTerm
	attrTermsErr map[int64]error
	skus         map[string]int64
	products     map[int64]*woocommerce.Product

	nextID int64

	createdPayloads []interface{}
	updatedPayloads []interface{}
	updatedIDs      []int64
}

func newFakeCommerce() *fakeCommerce {
	return &fakeCommerce{
		attrTerms: map[int64][]woocommerce.AttributeTerm{},
		skus:      map[string]int64{},
		products:  map[int64]*woocommerce.Product{},
		nextID:    100,
	}
}

func (f *fakeCommerce) ProductIDBySKU(_ context.Context, sku string) (int64, error) {
	return f.skus[sku], nil
}

func (f *fakeCommerce) Attributes(_ context.Context) ([]woocommerce.Attribute, error) {
	return f.attrs, f.attrsErr
}

func (f *fakeCommerce) AttributeTerms(_ context.Context, attributeID int64) ([]woocommerce.AttributeTerm, error) {
	if err := f.attrTermsErr[attributeID]; err != nil {
		return nil, err
	}
	return f.attrTerms[attributeID], nil
}

func (f *fakeCommerce) Product(_ context.Context, id int64) (*woocommerce.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func (f *fakeCommerce) create(item interface{}) (*woocommerce.Entity, error) {
	f.nextID++
	f.createdPayloads = append(f.createdPayloads, item)
	return &woocommerce.Entity{ID: f.nextID}, nil
}

func (f *fakeCommerce) update(id int64, item interface{}) (*woocommerce.Entity, error) {
	f.updatedPayloads = append(f.updatedPayloads, item)
	f.updatedIDs = append(f.updatedIDs, id)
	return &woocommerce.Entity{ID: id}, nil
}

func (f *fakeCommerce) CreateProduct(_ context.Context, item interface{}) (*woocommerce.Entity, error) {
	return f.create(item)
}

func (f *fakeCommerce) UpdateProduct(_ context.Context, id int64, item interface{}) (*woocommerce.Entity, error) {
	return f.update(id, item)
}

func (f *fakeCommerce) CreateVariation(_ context.Context, _ int64, item interface{}) (*woocommerce.Entity, error) {
	return f.create(item)
}

func (f *fakeCommerce) UpdateVariation(_ context.Context, _ int64, variationID int64, item interface{}) (*woocommerce.Entity, error) {
	return f.update(variationID, item)
}

func (f *fakeCommerce) CreateAttribute(_ context.Context, item interface{}) (*woocommerce.Entity, error) {
	return f.create(item)
}

func (f *fakeCommerce) UpdateAttribute(_ context.Context, id int64, item interface{}) (*woocommerce.Entity, error) {
	return f.update(id, item)
}

func newTestSyncer(t *testing.T) (*Syncer, *fakeCommerce, *store.Store) {
	t.Helper()

	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.New(db.DB)
	api := newFakeCommerce()

	log := logrus.New()
	log.SetOutput(io.Discard)

	linker := translations.New(st, "en")
	return New(st, api, linker, t.TempDir(), log), api, st
}
