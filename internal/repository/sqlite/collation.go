package sqlite

import (
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	msqlite "modernc.org/sqlite"
)

// CollationLocalized orders text case-insensitively using German collation rules,
// so "Müller" sorts between "Anders" and "Zimmer".
const CollationLocalized = "LOCALIZED_NOCASE"

var (
	// collate.Collator keeps internal buffers and is not safe for concurrent use
	collatorMu sync.Mutex
	collator   = collate.New(language.German, collate.IgnoreCase)
)

func compareLocalized(left, right string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(left, right)
}

func init() {
	// Registration applies to every connection opened afterwards
	if err := msqlite.RegisterCollationUtf8(CollationLocalized, compareLocalized); err != nil {
		panic(fmt.Sprintf("register collation %s: %v", CollationLocalized, err))
	}
}
