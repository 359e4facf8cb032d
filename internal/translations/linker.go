package translations

import (
	"errors"
	"fmt"

	"uploader/internal/models"
	"uploader/internal/store"
)

// ErrParentGroupNotFound means the default-language parent has no
// translation-group row, so the child cannot be reliably associated.
var ErrParentGroupNotFound = errors.New("parent translation group not found")

// Linker establishes or repairs the translation-group membership of a
// child entity against its resolved default-language parent.
//
// Precondition: the child entity already exists. Handlers create the
// entity first and link second; the linker does not enforce the ordering.
type Linker struct {
	store       *store.Store
	defaultLang string
}

func New(st *store.Store, defaultLang string) *Linker {
	return &Linker{store: st, defaultLang: defaultLang}
}

// DefaultLanguage is the language whose records are authoritative.
func (l *Linker) DefaultLanguage() string {
	return l.defaultLang
}

// LinkChild writes the child's group row: same TRID as the parent, the
// child's language, and the default language as source. Re-linking an
// already-linked pair rewrites the same values, so repair is idempotent.
func (l *Linker) LinkChild(parentID, childID int64, languageCode, elementType string) error {
	parent, err := l.store.TranslationRow(elementType, parentID)
	if store.IsNotFound(err) {
		return fmt.Errorf("%w: %s/%d has no %s group row", ErrParentGroupNotFound, elementType, parentID, l.defaultLang)
	}
	if err != nil {
		return err
	}

	child := models.Translation{
		ElementType:        elementType,
		ElementID:          childID,
		TRID:               parent.TRID,
		LanguageCode:       languageCode,
		SourceLanguageCode: l.defaultLang,
	}
	return l.store.SaveTranslation(&child)
}

// RegisterParent puts a brand-new default-language entity in its own
// translation group so later children have something to link against.
func (l *Linker) RegisterParent(elementType string, elementID int64) error {
	_, err := l.store.EnsureTranslation(elementType, elementID, l.defaultLang)
	return err
}
