package domain

// ItemKind identifies which record table an unlockable item lives in.
type ItemKind string

const (
	KindDeal  ItemKind = "deal"
	KindAlert ItemKind = "alert"
	KindNews  ItemKind = "news"
)

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindDeal, KindAlert, KindNews:
		return true
	}
	return false
}
