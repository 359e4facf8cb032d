package translations

import (
	"testing"

	"uploader/internal/database"
	"uploader/internal/models"
	"uploader/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLinker(t *testing.T) (*Linker, *store.Store) {
	t.Helper()
	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.New(db.DB)
	return New(st, "en"), st
}

func TestLinkChildRequiresParentGroup(t *testing.T) {
	l, _ := newTestLinker(t)

	err := l.LinkChild(10, 20, "nl", models.ElementProduct)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParentGroupNotFound)
}

func TestLinkChildJoinsParentGroup(t *testing.T) {
	l, st := newTestLinker(t)

	require.NoError(t, l.RegisterParent(models.ElementProduct, 10))
	require.NoError(t, l.LinkChild(10, 20, "nl", models.ElementProduct))

	parent, err := st.TranslationRow(models.ElementProduct, 10)
	require.NoError(t, err)
	child, err := st.TranslationRow(models.ElementProduct, 20)
	require.NoError(t, err)

	assert.Equal(t, parent.TRID, child.TRID)
	assert.Equal(t, "en", parent.LanguageCode)
	assert.Equal(t, "nl", child.LanguageCode)
	assert.Equal(t, "en", child.SourceLanguageCode)
}

func TestLinkChildRepairIsIdempotent(t *testing.T) {
	l, st := newTestLinker(t)

	require.NoError(t, l.RegisterParent(models.ElementProduct, 10))
	require.NoError(t, l.LinkChild(10, 20, "nl", models.ElementProduct))

	before, err := st.TranslationRow(models.ElementProduct, 20)
	require.NoError(t, err)

	require.NoError(t, l.LinkChild(10, 20, "nl", models.ElementProduct))

	after, err := st.TranslationRow(models.ElementProduct, 20)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.TRID, after.TRID)
}

func TestRegisterParentKeepsExistingGroup(t *testing.T) {
	l, st := newTestLinker(t)

	require.NoError(t, l.RegisterParent(models.ElementProduct, 10))
	first, err := st.TranslationRow(models.ElementProduct, 10)
	require.NoError(t, err)

	require.NoError(t, l.RegisterParent(models.ElementProduct, 10))
	second, err := st.TranslationRow(models.ElementProduct, 10)
	require.NoError(t, err)
	assert.Equal(t, first.TRID, second.TRID)
}

func TestGroupsAreIsolatedByElementType(t *testing.T) {
	l, st := newTestLinker(t)

	require.NoError(t, l.RegisterParent(models.ElementProduct, 10))
	require.NoError(t, l.RegisterParent(models.ElementVariation, 10))

	p, err := st.TranslationRow(models.ElementProduct, 10)
	require.NoError(t, err)
	v, err := st.TranslationRow(models.ElementVariation, 10)
	require.NoError(t, err)
	assert.NotEqual(t, p.TRID, v.TRID)
}
